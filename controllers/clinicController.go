package controllers

import (
	"ClinicCare/handlers"
	"ClinicCare/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupClinicRoutes registers the booking, availability, roster, and
// treatment routes, grouped by role.
func SetupClinicRoutes(
	router *gin.Engine,
	patientHandler *handlers.PatientHandler,
	doctorHandler *handlers.DoctorHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	bookingHandler *handlers.BookingHandler,
	appointmentHandler *handlers.AppointmentHandler,
	treatmentHandler *handlers.TreatmentHandler,
) {
	// Public: patient signup and the doctor listings used when booking
	router.POST("/patients/register", patientHandler.Register)
	router.GET("/specializations", doctorHandler.ListSpecializations)
	router.GET("/specializations/:specialization/doctors", doctorHandler.ListBySpecialization)
	router.GET("/doctors/search", doctorHandler.SearchDoctors)
	router.GET("/doctors/:doctor_id", doctorHandler.GetDoctor)
	router.GET("/doctors/:doctor_id/availability", availabilityHandler.ListDoctorWindows)

	// Patient routes: booking flow and own records
	patientGroup := router.Group("/patient").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware("Patient"),
	)
	{
		patientGroup.GET("/me", patientHandler.Me)
		patientGroup.GET("/doctors/:doctor_id/slots", bookingHandler.ListFreeSlots)
		patientGroup.POST("/appointments", bookingHandler.Book)
		patientGroup.GET("/appointments", bookingHandler.MyAppointments)
		patientGroup.GET("/appointments/:appointment_id", bookingHandler.GetAppointment)
		patientGroup.POST("/appointments/:appointment_id/cancel", bookingHandler.Cancel)
		patientGroup.POST("/appointments/:appointment_id/reschedule", bookingHandler.RequestReschedule)
		patientGroup.PUT("/appointments/:appointment_id/reschedule", bookingHandler.CompleteReschedule)
		patientGroup.GET("/appointments/:appointment_id/treatments", treatmentHandler.ForAppointment)
	}

	// Doctor routes: availability, schedule, and treatment records
	doctorGroup := router.Group("/doctor").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware("Doctor"),
	)
	{
		doctorGroup.GET("/me", doctorHandler.Me)
		doctorGroup.POST("/availability", availabilityHandler.AddWindow)
		doctorGroup.GET("/availability", availabilityHandler.ListOwnWindows)
		doctorGroup.DELETE("/availability/:window_id", availabilityHandler.DeleteWindow)
		doctorGroup.GET("/appointments", appointmentHandler.ListAppointments)
		doctorGroup.GET("/patients", appointmentHandler.ListPatients)
		doctorGroup.PUT("/appointments/:appointment_id/status", appointmentHandler.UpdateStatus)
		doctorGroup.POST("/appointments/:appointment_id/treatments", treatmentHandler.AddRecord)
		doctorGroup.GET("/patients/:patient_id/treatments", treatmentHandler.PatientHistory)
	}

	// Admin routes: roster management, search, and the dashboard
	adminGroup := router.Group("/admin").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware("Admin"),
	)
	{
		adminGroup.POST("/doctors", doctorHandler.CreateDoctor)
		adminGroup.PUT("/doctors/:doctor_id", doctorHandler.UpdateDoctor)
		adminGroup.DELETE("/doctors/:doctor_id", doctorHandler.DeleteDoctor)
		adminGroup.PUT("/doctors/:doctor_id/blacklist", doctorHandler.SetBlacklist)
		adminGroup.GET("/patients/search", patientHandler.Search)
		adminGroup.GET("/appointments/search", doctorHandler.SearchAppointments)
		adminGroup.GET("/dashboard", doctorHandler.DashboardSummary)
	}
}

package handlers

import (
	"ClinicCare/middlewares"
	"ClinicCare/scheduling"
	"ClinicCare/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

// BookingHandler covers the patient-side appointment flow: listing derived
// slots, booking, cancelling, and the two-step reschedule.
type BookingHandler struct {
	bookings *services.BookingService
	patients *services.PatientService
}

func NewBookingHandler(bookings *services.BookingService, patients *services.PatientService) *BookingHandler {
	return &BookingHandler{bookings: bookings, patients: patients}
}

func (h *BookingHandler) callerPatient(c *gin.Context) (string, bool) {
	userID, err := callerUserID(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid user identity"})
		return "", false
	}
	patient, err := h.patients.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, err)
		return "", false
	}
	return patient.ID, true
}

// ListFreeSlots returns the free 30-minute slots for a doctor and date. An
// optional reschedule_id marks the flow as a reschedule of that appointment,
// which keeps its own slot in the list.
func (h *BookingHandler) ListFreeSlots(c *gin.Context) {
	patientID, ok := h.callerPatient(c)
	if !ok {
		return
	}

	doctorID := c.Param("doctor_id")
	date := c.DefaultQuery("date", "")
	if date == "" {
		c.JSON(400, gin.H{"error": "date query parameter is required"})
		return
	}

	rescheduleID := uint(0)
	if raw := c.DefaultQuery("reschedule_id", ""); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid reschedule ID"})
			return
		}
		rescheduleID = uint(parsed)
	}

	slots, err := h.bookings.ListFreeSlots(c.Request.Context(), patientID, doctorID, date, rescheduleID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}

	formatted := make([]string, 0, len(slots))
	for _, slot := range slots {
		formatted = append(formatted, slot.Format(scheduling.SlotLayout))
	}
	c.JSON(200, gin.H{"slots": formatted})
}

// Book creates an appointment at one of the offered slots.
func (h *BookingHandler) Book(c *gin.Context) {
	patientID, ok := h.callerPatient(c)
	if !ok {
		return
	}

	var data struct {
		DoctorID string `json:"doctor_id"`
		Slot     string `json:"slot"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, err := h.bookings.Book(c.Request.Context(), patientID, data.DoctorID, data.Slot)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, appointment)
}

// Cancel moves the patient's appointment to Cancelled.
func (h *BookingHandler) Cancel(c *gin.Context) {
	patientID, ok := h.callerPatient(c)
	if !ok {
		return
	}

	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	if err := h.bookings.Cancel(c.Request.Context(), patientID, id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Appointment cancelled"})
}

// RequestReschedule consumes a reschedule credit and parks the appointment
// until a new slot is chosen.
func (h *BookingHandler) RequestReschedule(c *gin.Context) {
	patientID, ok := h.callerPatient(c)
	if !ok {
		return
	}

	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	appointment, err := h.bookings.RequestReschedule(c.Request.Context(), patientID, id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

// CompleteReschedule moves the parked appointment to its new slot.
func (h *BookingHandler) CompleteReschedule(c *gin.Context) {
	patientID, ok := h.callerPatient(c)
	if !ok {
		return
	}

	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	var data struct {
		Slot string `json:"slot"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, err := h.bookings.CompleteReschedule(c.Request.Context(), patientID, id, data.Slot)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

// MyAppointments returns the patient's upcoming and past appointments.
func (h *BookingHandler) MyAppointments(c *gin.Context) {
	patientID, ok := h.callerPatient(c)
	if !ok {
		return
	}

	upcoming, past, err := h.bookings.PatientAppointments(c.Request.Context(), patientID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, gin.H{"upcoming": upcoming, "past": past})
}

// GetAppointment returns one of the patient's own appointments.
func (h *BookingHandler) GetAppointment(c *gin.Context) {
	patientID, ok := h.callerPatient(c)
	if !ok {
		return
	}

	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	appointment, err := h.bookings.GetOwnedAppointment(c.Request.Context(), patientID, id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

func parseAppointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("appointment_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid appointment ID"})
		return 0, false
	}
	return uint(id), true
}

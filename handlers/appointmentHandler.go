package handlers

import (
	"ClinicCare/middlewares"
	"ClinicCare/services"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler covers the doctor-side appointment views and status
// updates.
type AppointmentHandler struct {
	bookings *services.BookingService
	doctors  *services.DoctorService
}

func NewAppointmentHandler(bookings *services.BookingService, doctors *services.DoctorService) *AppointmentHandler {
	return &AppointmentHandler{bookings: bookings, doctors: doctors}
}

func (h *AppointmentHandler) callerDoctor(c *gin.Context) (string, bool) {
	userID, err := callerUserID(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid user identity"})
		return "", false
	}
	doctor, err := h.doctors.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, err)
		return "", false
	}
	return doctor.ID, true
}

// ListAppointments returns the calling doctor's appointments, optionally
// filtered by status.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	doctorID, ok := h.callerDoctor(c)
	if !ok {
		return
	}

	appointments, err := h.bookings.DoctorAppointments(c.Request.Context(), doctorID, c.DefaultQuery("status", ""))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, appointments)
}

// ListPatients returns the distinct patients on the calling doctor's
// schedule.
func (h *AppointmentHandler) ListPatients(c *gin.Context) {
	doctorID, ok := h.callerDoctor(c)
	if !ok {
		return
	}

	patients, err := h.bookings.DoctorPatients(c.Request.Context(), doctorID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, patients)
}

// UpdateStatus marks one of the doctor's booked appointments Completed or
// Cancelled.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	doctorID, ok := h.callerDoctor(c)
	if !ok {
		return
	}

	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	var data struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, err := h.bookings.UpdateStatus(c.Request.Context(), doctorID, id, data.Status)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

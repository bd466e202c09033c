package handlers

import (
	"ClinicCare/middlewares"
	"ClinicCare/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler manages a doctor's published availability windows.
type AvailabilityHandler struct {
	service *services.AvailabilityService
	doctors *services.DoctorService
}

func NewAvailabilityHandler(service *services.AvailabilityService, doctors *services.DoctorService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service, doctors: doctors}
}

func (h *AvailabilityHandler) callerDoctor(c *gin.Context) (string, bool) {
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

// AddWindow publishes a new availability window for the calling doctor.
func (h *AvailabilityHandler) AddWindow(c *gin.Context) {
	doctorID, ok := h.callerDoctor(c)
	if !ok {
		return
	}

	var data struct {
		Date      string `json:"date"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	window, err := h.service.Add(c.Request.Context(), doctorID, data.Date, data.StartTime, data.EndTime)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, window)
}

// DeleteWindow removes one of the calling doctor's windows.
func (h *AvailabilityHandler) DeleteWindow(c *gin.Context) {
	doctorID, ok := h.callerDoctor(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("window_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid window ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), doctorID, uint(id)); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Availability deleted"})
}

// ListOwnWindows returns the calling doctor's published windows.
func (h *AvailabilityHandler) ListOwnWindows(c *gin.Context) {
	doctorID, ok := h.callerDoctor(c)
	if !ok {
		return
	}

	windows, err := h.service.ListByDoctor(c.Request.Context(), doctorID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, windows)
}

// ListDoctorWindows returns a doctor's windows for one date, for the
// patient-side booking view.
func (h *AvailabilityHandler) ListDoctorWindows(c *gin.Context) {
	date := c.DefaultQuery("date", "")
	if date == "" {
		c.JSON(400, gin.H{"error": "date query parameter is required"})
		return
	}

	windows, err := h.service.ListByDoctorDate(c.Request.Context(), c.Param("doctor_id"), date)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, windows)
}

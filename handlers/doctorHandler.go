package handlers

import (
	"ClinicCare/middlewares"
	"ClinicCare/services"

	"github.com/gin-gonic/gin"
)

// DoctorHandler covers the admin roster operations and the doctor listings
// patients browse when booking.
type DoctorHandler struct {
	service *services.DoctorService
	admin   *services.AdminService
}

func NewDoctorHandler(service *services.DoctorService, admin *services.AdminService) *DoctorHandler {
	return &DoctorHandler{service: service, admin: admin}
}

// CreateDoctor registers a new doctor with their login account.
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var data struct {
		Username       string `json:"username"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		Name           string `json:"name"`
		Specialization string `json:"specialization"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	doctor, err := h.service.Create(c.Request.Context(), data.Username, data.Email, data.Password, data.Name, data.Specialization)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, doctor)
}

// UpdateDoctor edits a doctor's profile and login. Empty fields are left
// unchanged.
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	doctorID := c.Param("doctor_id")

	var data struct {
		Username       string `json:"username"`
		Password       string `json:"password"`
		Name           string `json:"name"`
		Specialization string `json:"specialization"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	doctor, err := h.service.Update(c.Request.Context(), doctorID, data.Username, data.Password, data.Name, data.Specialization)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, doctor)
}

// DeleteDoctor removes the doctor, their login, and all dependent records.
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("doctor_id")); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Doctor deleted"})
}

// SetBlacklist blocks or unblocks the doctor's login.
func (h *DoctorHandler) SetBlacklist(c *gin.Context) {
	var data struct {
		Blacklisted bool `json:"blacklisted"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.SetBlacklist(c.Request.Context(), c.Param("doctor_id"), data.Blacklisted); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, gin.H{"blacklisted": data.Blacklisted})
}

func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	doctor, err := h.service.GetByID(c.Request.Context(), c.Param("doctor_id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, doctor)
}

// Me returns the doctor profile behind the authenticated user.
func (h *DoctorHandler) Me(c *gin.Context) {
	userID, err := callerUserID(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid user identity"})
		return
	}

	doctor, err := h.service.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, doctor)
}

// SearchDoctors matches doctors by name, specialization, or username.
func (h *DoctorHandler) SearchDoctors(c *gin.Context) {
	query := c.DefaultQuery("q", "")
	if query == "" {
		c.JSON(400, gin.H{"error": "search query is required"})
		return
	}

	doctors, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, doctors)
}

// ListBySpecialization returns the doctors offering one specialization.
func (h *DoctorHandler) ListBySpecialization(c *gin.Context) {
	doctors, err := h.service.ListBySpecialization(c.Request.Context(), c.Param("specialization"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, doctors)
}

// ListSpecializations returns the distinct specializations on the roster.
func (h *DoctorHandler) ListSpecializations(c *gin.Context) {
	specializations, err := h.service.ListSpecializations(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, specializations)
}

// DashboardSummary returns the record counts for the admin dashboard.
func (h *DoctorHandler) DashboardSummary(c *gin.Context) {
	summary, err := h.admin.Summary(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, summary)
}

// SearchAppointments matches appointments by patient or doctor name for the
// admin view.
func (h *DoctorHandler) SearchAppointments(c *gin.Context) {
	query := c.DefaultQuery("q", "")
	if query == "" {
		c.JSON(400, gin.H{"error": "search query is required"})
		return
	}

	appointments, err := h.admin.SearchAppointments(c.Request.Context(), query)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, appointments)
}

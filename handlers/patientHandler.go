package handlers

import (
	"ClinicCare/middlewares"
	"ClinicCare/services"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// Register creates a new patient account. This is the public signup route.
func (h *PatientHandler) Register(c *gin.Context) {
	var data struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Contact  string `json:"contact"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	patient, err := h.service.Register(c.Request.Context(), data.Username, data.Email, data.Password, data.Name, data.Contact)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, patient)
}

// Me returns the patient profile behind the authenticated user.
func (h *PatientHandler) Me(c *gin.Context) {
	userID, err := callerUserID(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid user identity"})
		return
	}

	patient, err := h.service.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, patient)
}

// Search matches patients by name or username for the admin view.
func (h *PatientHandler) Search(c *gin.Context) {
	query := c.DefaultQuery("q", "")
	if query == "" {
		c.JSON(400, gin.H{"error": "search query is required"})
		return
	}

	patients, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, patients)
}

package handlers

import (
	"ClinicCare/middlewares"
	"ClinicCare/services"

	"github.com/gin-gonic/gin"
)

// TreatmentHandler covers treatment records: doctors write them, patients
// read them once the appointment is completed.
type TreatmentHandler struct {
	treatments *services.TreatmentService
	doctors    *services.DoctorService
	patients   *services.PatientService
}

func NewTreatmentHandler(treatments *services.TreatmentService, doctors *services.DoctorService, patients *services.PatientService) *TreatmentHandler {
	return &TreatmentHandler{treatments: treatments, doctors: doctors, patients: patients}
}

// AddRecord attaches a treatment record to one of the calling doctor's
// appointments.
func (h *TreatmentHandler) AddRecord(c *gin.Context) {
	userID, err := callerUserID(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid user identity"})
		return
	}
	doctor, err := h.doctors.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}

	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	var data struct {
		Diagnosis     string `json:"diagnosis"`
		Prescriptions string `json:"prescriptions"`
		Notes         string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	record, err := h.treatments.Add(c.Request.Context(), doctor.ID, id, data.Diagnosis, data.Prescriptions, data.Notes)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, record)
}

// PatientHistory returns a patient's treatment history for the doctor-side
// view.
func (h *TreatmentHandler) PatientHistory(c *gin.Context) {
	records, err := h.treatments.PatientHistory(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, records)
}

// ForAppointment returns the treatments of the calling patient's own
// completed appointment.
func (h *TreatmentHandler) ForAppointment(c *gin.Context) {
	userID, err := callerUserID(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid user identity"})
		return
	}
	patient, err := h.patients.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}

	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}

	records, err := h.treatments.ForAppointment(c.Request.Context(), patient.ID, id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, records)
}

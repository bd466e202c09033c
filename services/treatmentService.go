package services

import (
	"ClinicCare/models"
	"ClinicCare/repositories"
	"ClinicCare/utils"
	"context"
	"fmt"
)

// AppointmentReader is the read-only slice of the ledger the treatment flow
// needs to resolve and authorize an appointment.
type AppointmentReader interface {
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
}

type TreatmentService struct {
	treatmentRepo *repositories.TreatmentRepository
	appointments  AppointmentReader
}

func NewTreatmentService(treatmentRepo *repositories.TreatmentRepository, appointments AppointmentReader) *TreatmentService {
	return &TreatmentService{treatmentRepo: treatmentRepo, appointments: appointments}
}

// Add attaches a treatment record to one of the doctor's own appointments.
func (s *TreatmentService) Add(ctx context.Context, doctorID string, appointmentID uint, diagnosis, prescriptions, notes string) (*models.TreatmentRecord, error) {
	if err := utils.ValidateTreatmentInput(diagnosis, prescriptions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrNotFound
	}
	if appointment.DoctorID != doctorID {
		return nil, ErrNotOwner
	}

	record := &models.TreatmentRecord{
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		AppointmentID: &appointment.ID,
		Diagnosis:     diagnosis,
		Prescriptions: prescriptions,
		Notes:         notes,
	}
	if err := s.treatmentRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ForAppointment returns the treatments of a patient's own appointment.
// Details stay hidden until the appointment is Completed.
func (s *TreatmentService) ForAppointment(ctx context.Context, patientID string, appointmentID uint) ([]models.TreatmentRecord, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrNotFound
	}
	if appointment.PatientID != patientID {
		return nil, ErrNotOwner
	}
	if appointment.Status != models.StatusCompleted {
		return nil, ErrTreatmentUnavailable
	}
	return s.treatmentRepo.ListByAppointment(ctx, appointmentID)
}

// PatientHistory returns a patient's full treatment history for the
// doctor-side view.
func (s *TreatmentService) PatientHistory(ctx context.Context, patientID string) ([]models.TreatmentRecord, error) {
	return s.treatmentRepo.ListByPatient(ctx, patientID)
}

package services

import (
	"ClinicCare/models"
	"ClinicCare/repositories"
	"context"
)

// DashboardSummary carries the record counts shown on the admin dashboard.
type DashboardSummary struct {
	Doctors      int64 `json:"doctors"`
	Patients     int64 `json:"patients"`
	Appointments int64 `json:"appointments"`
}

// AdminService backs the admin dashboard: record counts and the cross-table
// appointment search.
type AdminService struct {
	doctorRepo      *repositories.DoctorRepository
	patientRepo     *repositories.PatientRepository
	appointmentRepo *repositories.AppointmentRepository
}

func NewAdminService(doctorRepo *repositories.DoctorRepository, patientRepo *repositories.PatientRepository, appointmentRepo *repositories.AppointmentRepository) *AdminService {
	return &AdminService{
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (s *AdminService) Summary(ctx context.Context) (*DashboardSummary, error) {
	doctors, err := s.doctorRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.patientRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointmentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardSummary{Doctors: doctors, Patients: patients, Appointments: appointments}, nil
}

// SearchAppointments matches the query against patient and doctor names,
// case-insensitively.
func (s *AdminService) SearchAppointments(ctx context.Context, query string) ([]models.Appointment, error) {
	return s.appointmentRepo.Search(ctx, query)
}

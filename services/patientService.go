package services

import (
	"ClinicCare/models"
	"ClinicCare/repositories"
	"ClinicCare/utils"
	"context"
	"fmt"

	"github.com/google/uuid"
)

type PatientService struct {
	patientRepo *repositories.PatientRepository
	userRepo    repositories.UserRepository
}

func NewPatientService(patientRepo *repositories.PatientRepository, userRepo repositories.UserRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo, userRepo: userRepo}
}

// Register creates a patient account with its login user.
func (s *PatientService) Register(ctx context.Context, username, email, password, name, contact string) (*models.Patient, error) {
	if err := utils.ValidateRegistrationInput(username, email, password, name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	taken, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	role, err := s.userRepo.GetRoleByName(ctx, "Patient")
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("patient role is not seeded")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		RoleID:   role.ID,
	}
	patient := &models.Patient{
		ID:      uuid.New().String(),
		Name:    name,
		Contact: contact,
	}
	if err := s.patientRepo.Create(ctx, user, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *PatientService) GetByID(ctx context.Context, patientID string) (*models.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrNotFound
	}
	return patient, nil
}

// GetByUserID resolves the patient profile behind an authenticated user.
func (s *PatientService) GetByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrNotFound
	}
	return patient, nil
}

func (s *PatientService) Search(ctx context.Context, query string) ([]models.Patient, error) {
	return s.patientRepo.Search(ctx, query)
}

func (s *PatientService) Count(ctx context.Context) (int64, error) {
	return s.patientRepo.Count(ctx)
}

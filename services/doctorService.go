package services

import (
	"ClinicCare/models"
	"ClinicCare/repositories"
	"ClinicCare/utils"
	"context"
	"fmt"

	"github.com/google/uuid"
)

// DoctorService covers the admin-side roster operations and the identity
// lookups the doctor-facing handlers need.
type DoctorService struct {
	doctorRepo *repositories.DoctorRepository
	userRepo   repositories.UserRepository
}

func NewDoctorService(doctorRepo *repositories.DoctorRepository, userRepo repositories.UserRepository) *DoctorService {
	return &DoctorService{doctorRepo: doctorRepo, userRepo: userRepo}
}

// Create registers a new doctor with their login account.
func (s *DoctorService) Create(ctx context.Context, username, email, password, name, specialization string) (*models.Doctor, error) {
	if err := utils.ValidateRegistrationInput(username, email, password, name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if specialization == "" {
		return nil, fmt.Errorf("%w: specialization is required", ErrValidation)
	}

	taken, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	role, err := s.userRepo.GetRoleByName(ctx, "Doctor")
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("doctor role is not seeded")
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
	doctor := &models.Doctor{
		ID:             uuid.New().String(),
		Name:           name,
		Specialization: specialization,
	}
	if err := s.doctorRepo.Create(ctx, user, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// Update edits a doctor's profile and login. An empty password leaves the
// current one in place.
func (s *DoctorService) Update(ctx context.Context, doctorID, username, password, name, specialization string) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrNotFound
	}

	if name != "" {
		doctor.Name = name
	}
	if specialization != "" {
		doctor.Specialization = specialization
	}

	userUpdates := map[string]interface{}{}
	if username != "" {
		userUpdates["username"] = username
	}
	if password != "" {
		hashedPassword, err := utils.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		userUpdates["password"] = hashedPassword
	}

	if err := s.doctorRepo.Update(ctx, doctor, userUpdates); err != nil {
		return nil, err
	}
	if len(userUpdates) > 0 {
		if err := s.userRepo.DeleteUserCache(ctx, fmt.Sprintf("%d", doctor.UserID)); err != nil {
			return nil, err
		}
	}
	return doctor, nil
}

// Delete removes the doctor, their login, and all dependent records.
func (s *DoctorService) Delete(ctx context.Context, doctorID string) error {
	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return ErrNotFound
	}
	return s.doctorRepo.Delete(ctx, doctor)
}

// SetBlacklist toggles whether the doctor's account can log in.
func (s *DoctorService) SetBlacklist(ctx context.Context, doctorID string, blacklisted bool) error {
	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return ErrNotFound
	}
	return s.userRepo.SetBlacklisted(ctx, doctor.UserID, blacklisted)
}

func (s *DoctorService) GetByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrNotFound
	}
	return doctor, nil
}

// GetByUserID resolves the doctor profile behind an authenticated user.
func (s *DoctorService) GetByUserID(ctx context.Context, userID int64) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrNotFound
	}
	return doctor, nil
}

func (s *DoctorService) Search(ctx context.Context, query string) ([]models.Doctor, error) {
	return s.doctorRepo.Search(ctx, query)
}

func (s *DoctorService) ListBySpecialization(ctx context.Context, specialization string) ([]models.Doctor, error) {
	return s.doctorRepo.ListBySpecialization(ctx, specialization)
}

func (s *DoctorService) ListSpecializations(ctx context.Context) ([]string, error) {
	return s.doctorRepo.ListSpecializations(ctx)
}

func (s *DoctorService) Count(ctx context.Context) (int64, error) {
	return s.doctorRepo.Count(ctx)
}

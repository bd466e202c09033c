package services

import (
	"ClinicCare/models"
	"ClinicCare/repositories"
	"ClinicCare/utils"
	"context"
	"fmt"
	"log"
)

type UserService interface {
	AuthenticateUser(ctx context.Context, username, password string) (*models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	SendResetCode(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, email, resetCode, newPassword string) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// AuthenticateUser checks credentials and the blacklist flag. Blacklisted
// accounts are rejected even with a correct password.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if user == nil || !utils.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if user.IsBlacklisted {
		return nil, ErrAccountBlocked
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// SendResetCode generates a short-lived reset code, stores it in Redis, and
// emails it to the account's address.
func (s *userService) SendResetCode(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	code := utils.GenerateResetCode()
	if err := utils.SetResetCode(ctx, email, code); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	if err := utils.SendResetCodeEmail(email, code); err != nil {
		return fmt.Errorf("failed to send reset code email: %w", err)
	}
	return nil
}

// ChangePassword verifies the emailed reset code and sets the new password.
// The code is single-use: it is deleted on success.
func (s *userService) ChangePassword(ctx context.Context, email, resetCode, newPassword string) error {
	if err := utils.ValidatePasswordReset(resetCode, newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	code, err := utils.GetResetCode(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to load reset code: %w", err)
	}
	if code == nil || *code != resetCode {
		return fmt.Errorf("%w: %v", ErrValidation, utils.ErrInvalidResetCode)
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdateUserPassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	if err := utils.DeleteResetCode(ctx, email); err != nil {
		log.Printf("Failed to delete used reset code: %v", err)
	}
	return nil
}

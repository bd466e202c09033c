package services

import (
	"ClinicCare/models"
	"ClinicCare/utils"
	"context"
	"fmt"
)

// AvailabilityStore is the persistence surface for availability windows.
type AvailabilityStore interface {
	Create(ctx context.Context, window *models.DoctorAvailability) error
	GetByID(ctx context.Context, id uint) (*models.DoctorAvailability, error)
	ListByDoctorDate(ctx context.Context, doctorID, date string) ([]models.DoctorAvailability, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.DoctorAvailability, error)
	Delete(ctx context.Context, window *models.DoctorAvailability) error
}

// AvailabilityService manages a doctor's published windows. Malformed and
// overlapping windows are rejected here, before any slot is ever derived
// from them.
type AvailabilityService struct {
	store AvailabilityStore
}

func NewAvailabilityService(store AvailabilityStore) *AvailabilityService {
	return &AvailabilityService{store: store}
}

// Add validates and publishes a new window for the doctor. Any overlap with
// an existing window on the same date is rejected, boundary-touching
// included: an existing 09:00-10:00 window blocks a new 10:00-11:00 one.
func (s *AvailabilityService) Add(ctx context.Context, doctorID, date, startTime, endTime string) (*models.DoctorAvailability, error) {
	if err := utils.ValidateAvailabilityInput(date, startTime, endTime); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	// The fixed-width "15:04" format makes this a plain string comparison.
	if startTime >= endTime {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrValidation)
	}

	existing, err := s.store.ListByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	for _, w := range existing {
		if w.StartTime <= endTime && w.EndTime >= startTime {
			return nil, ErrAvailabilityOverlap
		}
	}

	window := &models.DoctorAvailability{
		DoctorID:  doctorID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}
	if err := s.store.Create(ctx, window); err != nil {
		return nil, err
	}
	return window, nil
}

// Delete removes one of the doctor's own windows. Already-booked slots are
// not re-validated against availability changes.
func (s *AvailabilityService) Delete(ctx context.Context, doctorID string, windowID uint) error {
	window, err := s.store.GetByID(ctx, windowID)
	if err != nil {
		return err
	}
	if window == nil {
		return ErrNotFound
	}
	if window.DoctorID != doctorID {
		return ErrNotOwner
	}
	return s.store.Delete(ctx, window)
}

func (s *AvailabilityService) ListByDoctor(ctx context.Context, doctorID string) ([]models.DoctorAvailability, error) {
	return s.store.ListByDoctor(ctx, doctorID)
}

func (s *AvailabilityService) ListByDoctorDate(ctx context.Context, doctorID, date string) ([]models.DoctorAvailability, error) {
	return s.store.ListByDoctorDate(ctx, doctorID, date)
}

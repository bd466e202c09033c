package repositories

import (
	"ClinicCare/cache"
	"ClinicCare/database"
	"ClinicCare/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

const AvailabilityCacheExpiry = 24 * time.Hour

type AvailabilityRepository struct {
	cache *cache.Cache
}

func NewAvailabilityRepository(cache *cache.Cache) *AvailabilityRepository {
	return &AvailabilityRepository{cache: cache}
}

func (r *AvailabilityRepository) Create(ctx context.Context, window *models.DoctorAvailability) error {
	if err := database.DB.WithContext(ctx).Create(window).Error; err != nil {
		return fmt.Errorf("failed to create availability window: %w", err)
	}
	return r.invalidate(ctx, window.DoctorID, window.Date)
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, id uint) (*models.DoctorAvailability, error) {
	var window models.DoctorAvailability
	err := database.DB.WithContext(ctx).First(&window, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get availability window: %w", err)
	}
	return &window, nil
}

// ListByDoctorDate returns the doctor's windows on a date, cache-aside: slot
// listings hit this on every booking page load, while windows change rarely.
func (r *AvailabilityRepository) ListByDoctorDate(ctx context.Context, doctorID, date string) ([]models.DoctorAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.cacheKey(doctorID, date)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var windows []models.DoctorAvailability
		if err := json.Unmarshal([]byte(cached), &windows); err == nil {
			return windows, nil
		}
	} else if err != nil {
		log.Printf("Failed to get availability from cache: %v", err)
	}

	var windows []models.DoctorAvailability
	err = database.DB.WithContext(ctx).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		Order("start_time ASC").
		Find(&windows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}

	if windowsJSON, err := json.Marshal(windows); err == nil {
		if err := r.cache.Set(ctx, cacheKey, windowsJSON, AvailabilityCacheExpiry); err != nil {
			log.Printf("Failed to set availability in cache: %v", err)
		}
	}
	return windows, nil
}

func (r *AvailabilityRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.DoctorAvailability, error) {
	var windows []models.DoctorAvailability
	err := database.DB.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("date ASC, start_time ASC").
		Find(&windows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor availability: %w", err)
	}
	return windows, nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, window *models.DoctorAvailability) error {
	err := database.DB.WithContext(ctx).
		Delete(&models.DoctorAvailability{}, "id = ?", window.ID).Error
	if err != nil {
		return fmt.Errorf("failed to delete availability window: %w", err)
	}
	return r.invalidate(ctx, window.DoctorID, window.Date)
}

func (r *AvailabilityRepository) invalidate(ctx context.Context, doctorID, date string) error {
	return r.cache.Delete(ctx, r.cacheKey(doctorID, date))
}

func (r *AvailabilityRepository) cacheKey(doctorID, date string) string {
	return fmt.Sprintf("availability_cache:%s_%s", doctorID, date)
}

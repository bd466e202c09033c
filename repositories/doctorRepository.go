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

const DoctorCacheExpiry = 7 * 24 * time.Hour

type DoctorRepository struct {
	cache *cache.Cache
}

func NewDoctorRepository(cache *cache.Cache) *DoctorRepository {
	return &DoctorRepository{cache: cache}
}

// Create inserts the login user and the doctor profile in one transaction so
// a half-created doctor never exists.
func (r *DoctorRepository) Create(ctx context.Context, user *models.User, doctor *models.Doctor) error {
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		doctor.UserID = user.ID
		return tx.Create(doctor).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return r.invalidateLists(ctx)
}

func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := fmt.Sprintf("doctor_cache:%s", id)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var doctor models.Doctor
		if err := json.Unmarshal([]byte(cached), &doctor); err == nil {
			return &doctor, nil
		}
	} else if err != nil {
		log.Printf("Failed to get doctor from cache: %v", err)
	}

	var doctor models.Doctor
	err = database.DB.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if doctorJSON, err := json.Marshal(doctor); err == nil {
		if err := r.cache.Set(ctx, cacheKey, doctorJSON, DoctorCacheExpiry); err != nil {
			log.Printf("Failed to set doctor in cache: %v", err)
		}
	}
	return &doctor, nil
}

func (r *DoctorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Doctor, error) {
	var doctor models.Doctor
	err := database.DB.WithContext(ctx).First(&doctor, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor by user: %w", err)
	}
	return &doctor, nil
}

// Search matches doctors by name, specialization, or username. An empty
// query returns the full roster.
func (r *DoctorRepository) Search(ctx context.Context, query string) ([]models.Doctor, error) {
	db := database.DB.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, is_blacklisted")
		}).
		Joins("JOIN users ON users.id = doctor.user_id")
	if query != "" {
		pattern := "%" + query + "%"
		db = db.Where("doctor.name ILIKE ? OR doctor.specialization ILIKE ? OR users.username ILIKE ?", pattern, pattern, pattern)
	}

	var doctors []models.Doctor
	if err := db.Order("doctor.name ASC").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	return doctors, nil
}

func (r *DoctorRepository) ListBySpecialization(ctx context.Context, specialization string) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := database.DB.WithContext(ctx).
		Where("specialization = ?", specialization).
		Order("name ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors by specialization: %w", err)
	}
	return doctors, nil
}

func (r *DoctorRepository) ListSpecializations(ctx context.Context) ([]string, error) {
	var specializations []string
	err := database.DB.WithContext(ctx).
		Model(&models.Doctor{}).
		Distinct("specialization").
		Order("specialization ASC").
		Pluck("specialization", &specializations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list specializations: %w", err)
	}
	return specializations, nil
}

// Update saves the profile and applies targeted column updates to the login
// user, so an omitted password is left untouched.
func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor, userUpdates map[string]interface{}) error {
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(doctor).Error; err != nil {
			return err
		}
		if len(userUpdates) == 0 {
			return nil
		}
		return tx.Model(&models.User{}).Where("id = ?", doctor.UserID).Updates(userUpdates).Error
	})
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	if err := r.cache.Delete(ctx, fmt.Sprintf("doctor_cache:%s", doctor.ID)); err != nil {
		return fmt.Errorf("failed to delete doctor cache: %w", err)
	}
	return r.invalidateLists(ctx)
}

// Delete removes the doctor with their login user and everything hanging off
// the profile: availability windows, appointments, and treatment records.
func (r *DoctorRepository) Delete(ctx context.Context, doctor *models.Doctor) error {
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.TreatmentRecord{}, "doctor_id = ?", doctor.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Appointment{}, "doctor_id = ?", doctor.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.DoctorAvailability{}, "doctor_id = ?", doctor.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Doctor{}, "id = ?", doctor.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", doctor.UserID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	if err := r.cache.Delete(ctx, fmt.Sprintf("doctor_cache:%s", doctor.ID)); err != nil {
		return fmt.Errorf("failed to delete doctor cache: %w", err)
	}
	return r.invalidateLists(ctx)
}

func (r *DoctorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := database.DB.WithContext(ctx).Model(&models.Doctor{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return count, nil
}

func (r *DoctorRepository) invalidateLists(ctx context.Context) error {
	return r.cache.DeleteAll(ctx, "doctor_cache*")
}

package repositories

import (
	"ClinicCare/database"
	"ClinicCare/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type TreatmentRepository struct{}

func NewTreatmentRepository() *TreatmentRepository {
	return &TreatmentRepository{}
}

func (r *TreatmentRepository) Create(ctx context.Context, record *models.TreatmentRecord) error {
	if err := database.DB.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create treatment record: %w", err)
	}
	return nil
}

func (r *TreatmentRepository) ListByAppointment(ctx context.Context, appointmentID uint) ([]models.TreatmentRecord, error) {
	var records []models.TreatmentRecord
	err := database.DB.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list treatments for appointment: %w", err)
	}
	return records, nil
}

// ListByPatient returns a patient's full treatment history, newest first,
// with the treating doctor preloaded for display.
func (r *TreatmentRepository) ListByPatient(ctx context.Context, patientID string) ([]models.TreatmentRecord, error) {
	var records []models.TreatmentRecord
	err := database.DB.WithContext(ctx).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, specialization")
		}).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patient treatments: %w", err)
	}
	return records, nil
}

package repositories

import (
	"ClinicCare/database"
	"ClinicCare/models"
	"ClinicCare/scheduling"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSlotTaken is returned when an insert or reschedule collides with the
// unique (doctor_id, appointment_datetime) index. The index is the final
// arbiter: two concurrent writers for the same slot cannot both succeed.
var ErrSlotTaken = errors.New("time slot is already booked")

type AppointmentRepository struct{}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{}
}

// withSlotLock runs fn while holding a short-lived Redis lock for the
// doctor/slot pair. The lock narrows the race window between the free-slot
// check and the insert; correctness still rests on the unique index.
func withSlotLock(ctx context.Context, doctorID string, slot time.Time, fn func() error) error {
	lockKey := fmt.Sprintf("booking_lock:%s_%s", doctorID, slot.UTC().Format(scheduling.SlotLayout))
	lockValue := uuid.New().String()

	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire booking lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release booking lock: %v", err)
		}
	}()

	return fn()
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return withSlotLock(ctx, appointment.DoctorID, appointment.AppointmentDateTime, func() error {
		err := database.DB.WithContext(ctx).Create(appointment).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlotTaken
		}
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return nil
	})
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointment models.Appointment
	err := database.DB.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, name")
		}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, name, specialization")
		}).
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// Update persists appointment mutations. A reschedule moves
// appointment_datetime, so a duplicate-key violation maps to ErrSlotTaken
// here as well.
func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	return withSlotLock(ctx, appointment.DoctorID, appointment.AppointmentDateTime, func() error {
		err := database.DB.WithContext(ctx).Save(appointment).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlotTaken
		}
		if err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}
		return nil
	})
}

// OccupiedSlots returns the doctor's booked datetimes inside [from, to),
// keyed for conflict classification. Every status occupies its slot: the
// unique index spans all statuses, so a cancelled row still blocks its time.
func (r *AppointmentRepository) OccupiedSlots(ctx context.Context, doctorID string, from, to time.Time) (scheduling.Occupancy, error) {
	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Select("id, appointment_datetime").
		Where("doctor_id = ? AND appointment_datetime >= ? AND appointment_datetime < ?", doctorID, from, to).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load occupied slots: %w", err)
	}

	occ := make(scheduling.Occupancy, len(appointments))
	for _, a := range appointments {
		occ.Take(a.AppointmentDateTime, a.ID)
	}
	return occ, nil
}

// ListByPatient returns the patient's appointments in the given statuses.
// ascending=true orders by appointment time ascending (upcoming view),
// false descending (history view).
func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID string, statuses []string, ascending bool) ([]models.Appointment, error) {
	order := "appointment_datetime DESC"
	if ascending {
		order = "appointment_datetime ASC"
	}

	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, specialization")
		}).
		Where("patient_id = ? AND status IN ?", patientID, statuses).
		Order(order).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return appointments, nil
}

// ListByDoctor returns the doctor's appointments, optionally filtered by status.
func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID string, status string) ([]models.Appointment, error) {
	query := database.DB.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, contact")
		}).
		Where("doctor_id = ?", doctorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_datetime ASC").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return appointments, nil
}

// Search returns appointments whose patient or doctor name matches the query,
// for the admin dashboard. An empty query returns everything.
func (r *AppointmentRepository) Search(ctx context.Context, query string) ([]models.Appointment, error) {
	db := database.DB.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, specialization")
		}).
		Joins("JOIN patient ON patient.id = appointment.patient_id").
		Joins("JOIN doctor ON doctor.id = appointment.doctor_id")
	if query != "" {
		pattern := "%" + query + "%"
		db = db.Where("patient.name ILIKE ? OR doctor.name ILIKE ?", pattern, pattern)
	}

	var appointments []models.Appointment
	if err := db.Order("appointment.created_at DESC").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to search appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := database.DB.WithContext(ctx).Model(&models.Appointment{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

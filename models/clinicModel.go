package models

import (
	"time"
)

// Appointment status values. An appointment is created Booked; a doctor moves
// it to Completed or Cancelled, a patient may Cancel or Reschedule it.
// Rescheduled returns to Booked once the patient picks the new slot.
const (
	StatusBooked      = "Booked"
	StatusCompleted   = "Completed"
	StatusCancelled   = "Cancelled"
	StatusRescheduled = "Rescheduled"
)

// MaxReschedules is the number of reschedule credits per appointment.
const MaxReschedules = 2

// Doctor model
type Doctor struct {
	ID             string               `gorm:"primaryKey;column:id" json:"id"`
	UserID         int64                `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	Name           string               `gorm:"column:name;not null;index" json:"name"`
	Specialization string               `gorm:"column:specialization;not null;index" json:"specialization"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	User           User                 `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Availabilities []DoctorAvailability `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	Appointments   []Appointment        `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	Treatments     []TreatmentRecord    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// Patient model
type Patient struct {
	ID           string            `gorm:"primaryKey;column:id" json:"id"`
	UserID       int64             `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	Name         string            `gorm:"column:name;not null;index" json:"name"`
	Contact      string            `gorm:"column:contact" json:"contact"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	User         User              `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Appointments []Appointment     `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Treatments   []TreatmentRecord `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// DoctorAvailability is a doctor-declared open window on a date. Date is
// stored as "2006-01-02", times as "15:04"; the fixed-width formats make the
// overlap comparison a plain string comparison. start_time < end_time is
// enforced before a window is created.
type DoctorAvailability struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID  string    `gorm:"column:doctor_id;not null;index:idx_doctor_date" json:"doctor_id"`
	Date      string    `gorm:"column:date;not null;index:idx_doctor_date" json:"date"`
	StartTime string    `gorm:"column:start_time;not null" json:"start_time"`
	EndTime   string    `gorm:"column:end_time;not null" json:"end_time"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Doctor    Doctor    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (DoctorAvailability) TableName() string {
	return "doctor_availability"
}

// Appointment model. The composite unique index on
// (doctor_id, appointment_datetime) is the authoritative double-booking
// guard; application-level checks are advisory only.
type Appointment struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID           string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID            string    `gorm:"column:doctor_id;not null;uniqueIndex:uq_doctor_datetime" json:"doctor_id"`
	AppointmentDateTime time.Time `gorm:"column:appointment_datetime;not null;uniqueIndex:uq_doctor_datetime" json:"appointment_datetime"`
	Status              string    `gorm:"column:status;check:status IN ('Booked', 'Completed', 'Cancelled', 'Rescheduled');not null;default:'Booked'" json:"status"`
	RescheduleCount     int       `gorm:"column:reschedule_count;not null;default:0" json:"reschedule_count"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient             Patient   `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	Doctor              Doctor    `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// TreatmentRecord model
type TreatmentRecord struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID     string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID      string    `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	AppointmentID *uint     `gorm:"column:appointment_id;index" json:"appointment_id"`
	Diagnosis     string    `gorm:"column:diagnosis;type:text;not null" json:"diagnosis"`
	Prescriptions string    `gorm:"column:prescriptions;type:text;not null" json:"prescriptions"`
	Notes         string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient       Patient   `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor        Doctor    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (TreatmentRecord) TableName() string {
	return "treatment_record"
}

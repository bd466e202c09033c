package services

import (
	"ClinicCare/models"
	"ClinicCare/repositories"
	"ClinicCare/scheduling"
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// AvailabilityReader is the slice of the availability store the booking flow
// needs: the windows a doctor has published for a given date.
type AvailabilityReader interface {
	ListByDoctorDate(ctx context.Context, doctorID, date string) ([]models.DoctorAvailability, error)
}

// AppointmentLedger is the booking ledger: the set of existing appointments
// per doctor, and the write path guarded by the storage-level unique
// constraint on (doctor_id, appointment_datetime).
type AppointmentLedger interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	OccupiedSlots(ctx context.Context, doctorID string, from, to time.Time) (scheduling.Occupancy, error)
	ListByPatient(ctx context.Context, patientID string, statuses []string, ascending bool) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string, status string) ([]models.Appointment, error)
}

// BookingService orchestrates slot listing, booking, cancellation, and the
// two-step reschedule flow. Caller identity is always passed in explicitly;
// ownership checks happen here, not in middleware.
type BookingService struct {
	windows AvailabilityReader
	ledger  AppointmentLedger
	policy  scheduling.BoundaryPolicy
}

// NewBookingService uses AllowTrailingOverflow: a slot is offered whenever
// it starts inside a window, matching how availability has always been
// interpreted by the clinic (a 09:00-09:45 window offers 09:30).
func NewBookingService(windows AvailabilityReader, ledger AppointmentLedger) *BookingService {
	return &BookingService{
		windows: windows,
		ledger:  ledger,
		policy:  scheduling.AllowTrailingOverflow,
	}
}

// ListFreeSlots derives the bookable candidates for a doctor and date. When
// rescheduleID is non-zero, the flow belongs to that appointment: it must be
// owned by the calling patient, and its own slot is exempt from conflict so
// the patient can keep their original time.
func (s *BookingService) ListFreeSlots(ctx context.Context, patientID, doctorID, date string, rescheduleID uint) ([]time.Time, error) {
	exempt := uint(0)
	if rescheduleID != 0 {
		appointment, err := s.ownedAppointment(ctx, patientID, rescheduleID)
		if err != nil {
			return nil, err
		}
		exempt = appointment.ID
	}

	windows, err := s.windowsFor(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, nil
	}

	occ, err := s.occupancyFor(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	return scheduling.FreeSlots(windows, occ, exempt, s.policy), nil
}

// Book creates a new appointment for the patient at the requested slot. The
// slot must be one of the derived candidates and free at commit time; a
// concurrent writer losing the race on the unique index surfaces as
// repositories.ErrSlotTaken, never as a crash.
func (s *BookingService) Book(ctx context.Context, patientID, doctorID, slotValue string) (*models.Appointment, error) {
	slot, err := parseSlot(slotValue)
	if err != nil {
		return nil, err
	}

	if err := s.ensureBookable(ctx, doctorID, slot, 0); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		PatientID:           patientID,
		DoctorID:            doctorID,
		AppointmentDateTime: slot,
		Status:              models.StatusBooked,
		RescheduleCount:     0,
	}
	if err := s.ledger.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Cancel moves a patient's appointment to Cancelled. Cancelled is terminal:
// repeating the cancel is rejected rather than silently re-applied, and a
// completed appointment cannot be cancelled.
func (s *BookingService) Cancel(ctx context.Context, patientID string, appointmentID uint) error {
	appointment, err := s.ownedAppointment(ctx, patientID, appointmentID)
	if err != nil {
		return err
	}

	switch appointment.Status {
	case models.StatusCancelled:
		return ErrAlreadyCancelled
	case models.StatusBooked, models.StatusRescheduled:
		appointment.Status = models.StatusCancelled
		return s.ledger.Update(ctx, appointment)
	default:
		return ErrInvalidTransition
	}
}

// RequestReschedule consumes a reschedule credit and parks the appointment
// in Rescheduled until the patient picks a new slot. The credit is spent
// here, at request time: abandoning the flow does not refund it. A third
// request is rejected without mutating anything.
func (s *BookingService) RequestReschedule(ctx context.Context, patientID string, appointmentID uint) (*models.Appointment, error) {
	appointment, err := s.ownedAppointment(ctx, patientID, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.RescheduleCount >= models.MaxReschedules {
		return nil, ErrRescheduleLimit
	}
	if appointment.Status != models.StatusBooked {
		return nil, ErrInvalidTransition
	}

	appointment.Status = models.StatusRescheduled
	appointment.RescheduleCount++
	if err := s.ledger.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// CompleteReschedule moves the parked appointment to its new slot and back
// to Booked. The counter was already incremented at request time and is not
// touched again. The appointment's former slot is exempt from the conflict
// check, so "rescheduling" back onto the original time succeeds.
func (s *BookingService) CompleteReschedule(ctx context.Context, patientID string, appointmentID uint, slotValue string) (*models.Appointment, error) {
	appointment, err := s.ownedAppointment(ctx, patientID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.Status != models.StatusRescheduled {
		return nil, ErrInvalidTransition
	}

	slot, err := parseSlot(slotValue)
	if err != nil {
		return nil, err
	}

	if err := s.ensureBookable(ctx, appointment.DoctorID, slot, appointment.ID); err != nil {
		return nil, err
	}

	appointment.AppointmentDateTime = slot
	appointment.Status = models.StatusBooked
	if err := s.ledger.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// UpdateStatus lets the treating doctor mark a booked appointment Completed
// or Cancelled.
func (s *BookingService) UpdateStatus(ctx context.Context, doctorID string, appointmentID uint, status string) (*models.Appointment, error) {
	if status != models.StatusCompleted && status != models.StatusCancelled {
		return nil, fmt.Errorf("%w: status must be %s or %s", ErrValidation, models.StatusCompleted, models.StatusCancelled)
	}

	appointment, err := s.ledger.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrNotFound
	}
	if appointment.DoctorID != doctorID {
		return nil, ErrNotOwner
	}
	if appointment.Status != models.StatusBooked {
		return nil, ErrInvalidTransition
	}

	appointment.Status = status
	if err := s.ledger.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// PatientAppointments returns the patient's upcoming booked appointments
// (soonest first) and their history (newest first).
func (s *BookingService) PatientAppointments(ctx context.Context, patientID string) (upcoming, past []models.Appointment, err error) {
	upcoming, err = s.ledger.ListByPatient(ctx, patientID, []string{models.StatusBooked}, true)
	if err != nil {
		return nil, nil, err
	}
	past, err = s.ledger.ListByPatient(ctx, patientID,
		[]string{models.StatusCancelled, models.StatusCompleted, models.StatusRescheduled}, false)
	if err != nil {
		return nil, nil, err
	}
	return upcoming, past, nil
}

// DoctorAppointments returns the doctor's appointments, optionally filtered
// by status (empty status means all).
func (s *BookingService) DoctorAppointments(ctx context.Context, doctorID, status string) ([]models.Appointment, error) {
	return s.ledger.ListByDoctor(ctx, doctorID, status)
}

// DoctorPatients returns the distinct patients who have appointments with
// the doctor, in order of next appointment.
func (s *BookingService) DoctorPatients(ctx context.Context, doctorID string) ([]models.Patient, error) {
	appointments, err := s.ledger.ListByDoctor(ctx, doctorID, "")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(appointments))
	patients := make([]models.Patient, 0, len(appointments))
	for _, appointment := range appointments {
		if seen[appointment.PatientID] {
			continue
		}
		seen[appointment.PatientID] = true
		patients = append(patients, appointment.Patient)
	}
	return patients, nil
}

// GetOwnedAppointment fetches an appointment and verifies patient ownership.
func (s *BookingService) GetOwnedAppointment(ctx context.Context, patientID string, appointmentID uint) (*models.Appointment, error) {
	return s.ownedAppointment(ctx, patientID, appointmentID)
}

func (s *BookingService) ownedAppointment(ctx context.Context, patientID string, appointmentID uint) (*models.Appointment, error) {
	appointment, err := s.ledger.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrNotFound
	}
	if appointment.PatientID != patientID {
		return nil, ErrNotOwner
	}
	return appointment, nil
}

// ensureBookable re-runs the candidate and conflict checks at commit time.
// The check is advisory: the unique index catches whatever slips between it
// and the write.
func (s *BookingService) ensureBookable(ctx context.Context, doctorID string, slot time.Time, exempt uint) error {
	date := slot.UTC().Format(scheduling.DateLayout)

	windows, err := s.windowsFor(ctx, doctorID, date)
	if err != nil {
		return err
	}
	if !scheduling.Contains(windows, slot, s.policy) {
		return ErrSlotNotOffered
	}

	occ, err := s.occupancyFor(ctx, doctorID, date)
	if err != nil {
		return err
	}
	if !occ.Free(slot, exempt) {
		return repositories.ErrSlotTaken
	}
	return nil
}

func (s *BookingService) windowsFor(ctx context.Context, doctorID, date string) ([]scheduling.Window, error) {
	rows, err := s.windows.ListByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	windows := make([]scheduling.Window, 0, len(rows))
	for _, row := range rows {
		w, err := scheduling.NewWindow(row.Date, row.StartTime, row.EndTime)
		if err != nil {
			// Windows are validated at creation; a malformed row here is
			// data corruption, not user error.
			return nil, errors.Wrapf(err, "stored availability window %d is malformed", row.ID)
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func (s *BookingService) occupancyFor(ctx context.Context, doctorID, date string) (scheduling.Occupancy, error) {
	day, err := time.Parse(scheduling.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}
	return s.ledger.OccupiedSlots(ctx, doctorID, day, day.Add(24*time.Hour))
}

func parseSlot(value string) (time.Time, error) {
	slot, err := time.Parse(scheduling.SlotLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: slot must use the %q format", ErrValidation, scheduling.SlotLayout)
	}
	return slot, nil
}

package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ClinicCare/models"
	"ClinicCare/repositories"
	"ClinicCare/scheduling"
	"ClinicCare/services"
)

// fakeWindows serves availability rows keyed by doctor and date.
type fakeWindows struct {
	rows []models.DoctorAvailability
}

func (f *fakeWindows) ListByDoctorDate(_ context.Context, doctorID, date string) ([]models.DoctorAvailability, error) {
	var out []models.DoctorAvailability
	for _, row := range f.rows {
		if row.DoctorID == doctorID && row.Date == date {
			out = append(out, row)
		}
	}
	return out, nil
}

// fakeLedger is an in-memory booking ledger that enforces the same unique
// (doctor_id, appointment_datetime) rule the database index does.
type fakeLedger struct {
	nextID       uint
	appointments map[uint]*models.Appointment
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{nextID: 1, appointments: map[uint]*models.Appointment{}}
}

func (f *fakeLedger) occupied(doctorID string, slot time.Time, exclude uint) bool {
	for id, a := range f.appointments {
		if id != exclude && a.DoctorID == doctorID && a.AppointmentDateTime.Equal(slot) {
			return true
		}
	}
	return false
}

func (f *fakeLedger) Create(_ context.Context, appointment *models.Appointment) error {
	if f.occupied(appointment.DoctorID, appointment.AppointmentDateTime, 0) {
		return repositories.ErrSlotTaken
	}
	appointment.ID = f.nextID
	f.nextID++
	copied := *appointment
	f.appointments[copied.ID] = &copied
	return nil
}

func (f *fakeLedger) GetByID(_ context.Context, id uint) (*models.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeLedger) Update(_ context.Context, appointment *models.Appointment) error {
	if _, ok := f.appointments[appointment.ID]; !ok {
		return fmt.Errorf("appointment %d does not exist", appointment.ID)
	}
	if f.occupied(appointment.DoctorID, appointment.AppointmentDateTime, appointment.ID) {
		return repositories.ErrSlotTaken
	}
	copied := *appointment
	f.appointments[copied.ID] = &copied
	return nil
}

func (f *fakeLedger) OccupiedSlots(_ context.Context, doctorID string, from, to time.Time) (scheduling.Occupancy, error) {
	occ := scheduling.Occupancy{}
	for id, a := range f.appointments {
		if a.DoctorID == doctorID && !a.AppointmentDateTime.Before(from) && a.AppointmentDateTime.Before(to) {
			occ.Take(a.AppointmentDateTime, id)
		}
	}
	return occ, nil
}

func (f *fakeLedger) ListByPatient(_ context.Context, patientID string, statuses []string, _ bool) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.PatientID != patientID {
			continue
		}
		for _, status := range statuses {
			if a.Status == status {
				out = append(out, *a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeLedger) ListByDoctor(_ context.Context, doctorID string, status string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && (status == "" || a.Status == status) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func newBookingHarness() (*services.BookingService, *fakeLedger) {
	windows := &fakeWindows{rows: []models.DoctorAvailability{
		{ID: 1, DoctorID: "dr-1", Date: "2024-01-10", StartTime: "09:00", EndTime: "10:00"},
		{ID: 2, DoctorID: "dr-1", Date: "2024-01-10", StartTime: "14:00", EndTime: "15:00"},
	}}
	ledger := newFakeLedger()
	return services.NewBookingService(windows, ledger), ledger
}

func TestBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("books a free derived slot", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		appointment, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("Book failed: %v", err)
		}
		if appointment.Status != models.StatusBooked || appointment.RescheduleCount != 0 {
			t.Fatalf("unexpected appointment state: %+v", appointment)
		}
	})

	t.Run("rejects a slot that was never offered", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		if _, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:15"); !errors.Is(err, services.ErrSlotNotOffered) {
			t.Fatalf("off-grid slot: got %v, want ErrSlotNotOffered", err)
		}
		if _, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-11 09:00"); !errors.Is(err, services.ErrSlotNotOffered) {
			t.Fatalf("date without availability: got %v, want ErrSlotNotOffered", err)
		}
	})

	t.Run("rejects malformed slot input", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		if _, err := svc.Book(ctx, "pat-1", "dr-1", "next tuesday"); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("got %v, want ErrValidation", err)
		}
	})

	t.Run("second patient is rejected for a taken slot", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		if _, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00"); err != nil {
			t.Fatalf("first booking failed: %v", err)
		}
		if _, err := svc.Book(ctx, "pat-2", "dr-1", "2024-01-10 09:00"); !errors.Is(err, repositories.ErrSlotTaken) {
			t.Fatalf("got %v, want ErrSlotTaken", err)
		}
	})
}

func TestListFreeSlots(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("booked slots drop out of the candidate list", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		if _, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00"); err != nil {
			t.Fatalf("booking failed: %v", err)
		}

		slots, err := svc.ListFreeSlots(ctx, "pat-2", "dr-1", "2024-01-10", 0)
		if err != nil {
			t.Fatalf("ListFreeSlots failed: %v", err)
		}
		if len(slots) != 3 {
			t.Fatalf("got %d free slots, want 3 (09:30, 14:00, 14:30): %v", len(slots), slots)
		}
		if slots[0].Format("15:04") != "09:30" {
			t.Fatalf("first free slot = %v, want 09:30", slots[0])
		}
	})

	t.Run("no availability means no slots", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		slots, err := svc.ListFreeSlots(ctx, "pat-1", "dr-1", "2024-02-01", 0)
		if err != nil {
			t.Fatalf("ListFreeSlots failed: %v", err)
		}
		if len(slots) != 0 {
			t.Fatalf("got %v, want no slots", slots)
		}
	})

	t.Run("own slot stays listed during a reschedule", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		appointment, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		if _, err := svc.RequestReschedule(ctx, "pat-1", appointment.ID); err != nil {
			t.Fatalf("RequestReschedule failed: %v", err)
		}

		slots, err := svc.ListFreeSlots(ctx, "pat-1", "dr-1", "2024-01-10", appointment.ID)
		if err != nil {
			t.Fatalf("ListFreeSlots failed: %v", err)
		}
		found := false
		for _, slot := range slots {
			if slot.Format("15:04") == "09:00" {
				found = true
			}
		}
		if !found {
			t.Fatalf("own 09:00 slot missing from reschedule candidates: %v", slots)
		}
	})

	t.Run("another patient cannot borrow the exemption", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		appointment, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}

		if _, err := svc.ListFreeSlots(ctx, "pat-2", "dr-1", "2024-01-10", appointment.ID); !errors.Is(err, services.ErrNotOwner) {
			t.Fatalf("got %v, want ErrNotOwner", err)
		}
	})
}

func TestCancel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("cancels a booked appointment once", func(t *testing.T) {
		t.Parallel()
		svc, ledger := newBookingHarness()

		appointment, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		if err := svc.Cancel(ctx, "pat-1", appointment.ID); err != nil {
			t.Fatalf("Cancel failed: %v", err)
		}

		stored := ledger.appointments[appointment.ID]
		if stored.Status != models.StatusCancelled {
			t.Fatalf("status = %s, want Cancelled", stored.Status)
		}

		if err := svc.Cancel(ctx, "pat-1", appointment.ID); !errors.Is(err, services.ErrAlreadyCancelled) {
			t.Fatalf("second cancel: got %v, want ErrAlreadyCancelled", err)
		}
	})

	t.Run("rejects cancelling another patient's appointment", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		appointment, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		if err := svc.Cancel(ctx, "pat-2", appointment.ID); !errors.Is(err, services.ErrNotOwner) {
			t.Fatalf("got %v, want ErrNotOwner", err)
		}
	})

	t.Run("rejects cancelling a completed appointment", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		appointment, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		if _, err := svc.UpdateStatus(ctx, "dr-1", appointment.ID, models.StatusCompleted); err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}
		if err := svc.Cancel(ctx, "pat-1", appointment.ID); !errors.Is(err, services.ErrInvalidTransition) {
			t.Fatalf("got %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("unknown appointment is not found", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		if err := svc.Cancel(ctx, "pat-1", 999); !errors.Is(err, services.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})
}

func TestReschedule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("two reschedules succeed, the third is rejected", func(t *testing.T) {
		t.Parallel()
		svc, ledger := newBookingHarness()

		appointment, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}

		for i, slot := range []string{"2024-01-10 09:30", "2024-01-10 14:00"} {
			parked, err := svc.RequestReschedule(ctx, "pat-1", appointment.ID)
			if err != nil {
				t.Fatalf("reschedule %d request failed: %v", i+1, err)
			}
			if parked.Status != models.StatusRescheduled || parked.RescheduleCount != i+1 {
				t.Fatalf("reschedule %d: unexpected parked state %+v", i+1, parked)
			}

			moved, err := svc.CompleteReschedule(ctx, "pat-1", appointment.ID, slot)
			if err != nil {
				t.Fatalf("reschedule %d completion failed: %v", i+1, err)
			}
			if moved.Status != models.StatusBooked {
				t.Fatalf("reschedule %d: status = %s, want Booked", i+1, moved.Status)
			}
			if moved.RescheduleCount != i+1 {
				t.Fatalf("reschedule %d: completion must not consume another credit, count = %d", i+1, moved.RescheduleCount)
			}
		}

		if _, err := svc.RequestReschedule(ctx, "pat-1", appointment.ID); !errors.Is(err, services.ErrRescheduleLimit) {
			t.Fatalf("third reschedule: got %v, want ErrRescheduleLimit", err)
		}

		stored := ledger.appointments[appointment.ID]
		if stored.RescheduleCount != models.MaxReschedules {
			t.Fatalf("count = %d, want %d after rejected third attempt", stored.RescheduleCount, models.MaxReschedules)
		}
		if stored.Status != models.StatusBooked || stored.AppointmentDateTime.Format("15:04") != "14:00" {
			t.Fatalf("rejected attempt must not move the appointment: %+v", stored)
		}
	})

	t.Run("abandoned reschedule still consumes a credit", func(t *testing.T) {
		t.Parallel()
		svc, ledger := newBookingHarness()

		appointment, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		if _, err := svc.RequestReschedule(ctx, "pat-1", appointment.ID); err != nil {
			t.Fatalf("RequestReschedule failed: %v", err)
		}

		stored := ledger.appointments[appointment.ID]
		if stored.Status != models.StatusRescheduled || stored.RescheduleCount != 1 {
			t.Fatalf("abandoned reschedule state: %+v", stored)
		}
	})

	t.Run("rescheduling back onto the original slot succeeds", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		appointment, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		if _, err := svc.RequestReschedule(ctx, "pat-1", appointment.ID); err != nil {
			t.Fatalf("RequestReschedule failed: %v", err)
		}
		moved, err := svc.CompleteReschedule(ctx, "pat-1", appointment.ID, "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("keeping the original slot failed: %v", err)
		}
		if moved.Status != models.StatusBooked {
			t.Fatalf("status = %s, want Booked", moved.Status)
		}
	})

	t.Run("completion into a taken slot is rejected", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		appointment, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		if _, err := svc.Book(ctx, "pat-2", "dr-1", "2024-01-10 09:30"); err != nil {
			t.Fatalf("second booking failed: %v", err)
		}
		if _, err := svc.RequestReschedule(ctx, "pat-1", appointment.ID); err != nil {
			t.Fatalf("RequestReschedule failed: %v", err)
		}
		if _, err := svc.CompleteReschedule(ctx, "pat-1", appointment.ID, "2024-01-10 09:30"); !errors.Is(err, repositories.ErrSlotTaken) {
			t.Fatalf("got %v, want ErrSlotTaken", err)
		}
	})

	t.Run("completion requires a pending reschedule", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		appointment, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		if _, err := svc.CompleteReschedule(ctx, "pat-1", appointment.ID, "2024-01-10 09:30"); !errors.Is(err, services.ErrInvalidTransition) {
			t.Fatalf("got %v, want ErrInvalidTransition", err)
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("doctor completes own appointment", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		appointment, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		updated, err := svc.UpdateStatus(ctx, "dr-1", appointment.ID, models.StatusCompleted)
		if err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}
		if updated.Status != models.StatusCompleted {
			t.Fatalf("status = %s, want Completed", updated.Status)
		}
	})

	t.Run("another doctor cannot touch the appointment", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		appointment, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		if _, err := svc.UpdateStatus(ctx, "dr-2", appointment.ID, models.StatusCompleted); !errors.Is(err, services.ErrNotOwner) {
			t.Fatalf("got %v, want ErrNotOwner", err)
		}
	})

	t.Run("only Completed and Cancelled are accepted", func(t *testing.T) {
		t.Parallel()
		svc, _ := newBookingHarness()

		appointment, err := svc.Book(ctx, "pat-1", "dr-1", "2024-01-10 09:00")
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		if _, err := svc.UpdateStatus(ctx, "dr-1", appointment.ID, "Done"); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("got %v, want ErrValidation", err)
		}
	})
}

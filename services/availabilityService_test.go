package services_test

import (
	"context"
	"errors"
	"testing"

	"ClinicCare/models"
	"ClinicCare/services"
)

// fakeAvailabilityStore keeps windows in a slice, IDs assigned on insert.
type fakeAvailabilityStore struct {
	nextID  uint
	windows []models.DoctorAvailability
}

func newFakeAvailabilityStore() *fakeAvailabilityStore {
	return &fakeAvailabilityStore{nextID: 1}
}

func (f *fakeAvailabilityStore) Create(_ context.Context, window *models.DoctorAvailability) error {
	window.ID = f.nextID
	f.nextID++
	f.windows = append(f.windows, *window)
	return nil
}

func (f *fakeAvailabilityStore) GetByID(_ context.Context, id uint) (*models.DoctorAvailability, error) {
	for _, w := range f.windows {
		if w.ID == id {
			copied := w
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAvailabilityStore) ListByDoctorDate(_ context.Context, doctorID, date string) ([]models.DoctorAvailability, error) {
	var out []models.DoctorAvailability
	for _, w := range f.windows {
		if w.DoctorID == doctorID && w.Date == date {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityStore) ListByDoctor(_ context.Context, doctorID string) ([]models.DoctorAvailability, error) {
	var out []models.DoctorAvailability
	for _, w := range f.windows {
		if w.DoctorID == doctorID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityStore) Delete(_ context.Context, window *models.DoctorAvailability) error {
	for i, w := range f.windows {
		if w.ID == window.ID {
			f.windows = append(f.windows[:i], f.windows[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestAvailabilityAdd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("publishes a valid window", func(t *testing.T) {
		t.Parallel()
		svc := services.NewAvailabilityService(newFakeAvailabilityStore())

		window, err := svc.Add(ctx, "dr-1", "2024-01-10", "09:00", "12:00")
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if window.ID == 0 {
			t.Fatal("window was not persisted")
		}
	})

	t.Run("rejects start at or after end", func(t *testing.T) {
		t.Parallel()
		svc := services.NewAvailabilityService(newFakeAvailabilityStore())

		for _, tc := range []struct{ start, end string }{
			{"12:00", "09:00"},
			{"09:00", "09:00"},
		} {
			if _, err := svc.Add(ctx, "dr-1", "2024-01-10", tc.start, tc.end); !errors.Is(err, services.ErrValidation) {
				t.Errorf("%s-%s: got %v, want ErrValidation", tc.start, tc.end, err)
			}
		}
	})

	t.Run("rejects malformed date and clock values", func(t *testing.T) {
		t.Parallel()
		svc := services.NewAvailabilityService(newFakeAvailabilityStore())

		if _, err := svc.Add(ctx, "dr-1", "10/01/2024", "09:00", "12:00"); !errors.Is(err, services.ErrValidation) {
			t.Errorf("bad date: got %v, want ErrValidation", err)
		}
		if _, err := svc.Add(ctx, "dr-1", "2024-01-10", "9am", "12:00"); !errors.Is(err, services.ErrValidation) {
			t.Errorf("bad clock: got %v, want ErrValidation", err)
		}
	})

	t.Run("rejects overlap with an existing window", func(t *testing.T) {
		t.Parallel()
		svc := services.NewAvailabilityService(newFakeAvailabilityStore())

		if _, err := svc.Add(ctx, "dr-1", "2024-01-10", "09:00", "12:00"); err != nil {
			t.Fatalf("seed window failed: %v", err)
		}

		for _, tc := range []struct{ name, start, end string }{
			{"partial overlap", "11:00", "13:00"},
			{"contained", "10:00", "11:00"},
			{"containing", "08:00", "13:00"},
			{"touching at the end", "12:00", "14:00"},
			{"touching at the start", "08:00", "09:00"},
		} {
			if _, err := svc.Add(ctx, "dr-1", "2024-01-10", tc.start, tc.end); !errors.Is(err, services.ErrAvailabilityOverlap) {
				t.Errorf("%s: got %v, want ErrAvailabilityOverlap", tc.name, err)
			}
		}
	})

	t.Run("disjoint windows and other doctors are unaffected", func(t *testing.T) {
		t.Parallel()
		svc := services.NewAvailabilityService(newFakeAvailabilityStore())

		if _, err := svc.Add(ctx, "dr-1", "2024-01-10", "09:00", "12:00"); err != nil {
			t.Fatalf("seed window failed: %v", err)
		}
		if _, err := svc.Add(ctx, "dr-1", "2024-01-10", "13:00", "15:00"); err != nil {
			t.Errorf("disjoint window on same date: %v", err)
		}
		if _, err := svc.Add(ctx, "dr-1", "2024-01-11", "09:00", "12:00"); err != nil {
			t.Errorf("same clock range on another date: %v", err)
		}
		if _, err := svc.Add(ctx, "dr-2", "2024-01-10", "09:00", "12:00"); err != nil {
			t.Errorf("same window for another doctor: %v", err)
		}
	})
}

func TestAvailabilityDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes the doctor's own window", func(t *testing.T) {
		t.Parallel()
		store := newFakeAvailabilityStore()
		svc := services.NewAvailabilityService(store)

		window, err := svc.Add(ctx, "dr-1", "2024-01-10", "09:00", "12:00")
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if err := svc.Delete(ctx, "dr-1", window.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if len(store.windows) != 0 {
			t.Fatalf("window still stored: %+v", store.windows)
		}
	})

	t.Run("rejects deleting another doctor's window", func(t *testing.T) {
		t.Parallel()
		svc := services.NewAvailabilityService(newFakeAvailabilityStore())

		window, err := svc.Add(ctx, "dr-1", "2024-01-10", "09:00", "12:00")
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if err := svc.Delete(ctx, "dr-2", window.ID); !errors.Is(err, services.ErrNotOwner) {
			t.Fatalf("got %v, want ErrNotOwner", err)
		}
	})

	t.Run("unknown window is not found", func(t *testing.T) {
		t.Parallel()
		svc := services.NewAvailabilityService(newFakeAvailabilityStore())

		if err := svc.Delete(ctx, "dr-1", 42); !errors.Is(err, services.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})
}

package scheduling_test

import (
	"testing"
	"time"

	"ClinicCare/scheduling"
)

func mustWindow(t *testing.T, date, start, end string) scheduling.Window {
	t.Helper()
	w, err := scheduling.NewWindow(date, start, end)
	if err != nil {
		t.Fatalf("NewWindow(%s %s-%s) failed: %v", date, start, end, err)
	}
	return w
}

func slotAt(t *testing.T, value string) time.Time {
	t.Helper()
	slot, err := time.Parse(scheduling.SlotLayout, value)
	if err != nil {
		t.Fatalf("bad slot literal %q: %v", value, err)
	}
	return slot
}

func TestNewWindow(t *testing.T) {
	t.Parallel()

	t.Run("rejects start at or after end", func(t *testing.T) {
		t.Parallel()
		if _, err := scheduling.NewWindow("2024-01-10", "10:00", "09:00"); err == nil {
			t.Fatal("expected error for inverted window")
		}
		if _, err := scheduling.NewWindow("2024-01-10", "09:00", "09:00"); err == nil {
			t.Fatal("expected error for empty window")
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()
		if _, err := scheduling.NewWindow("10-01-2024", "09:00", "10:00"); err == nil {
			t.Fatal("expected error for bad date")
		}
		if _, err := scheduling.NewWindow("2024-01-10", "9am", "10:00"); err == nil {
			t.Fatal("expected error for bad clock")
		}
	})
}

func TestExpand(t *testing.T) {
	t.Parallel()

	t.Run("exact multiple of the slot duration", func(t *testing.T) {
		t.Parallel()
		w := mustWindow(t, "2024-01-10", "09:00", "10:00")
		for _, policy := range []scheduling.BoundaryPolicy{scheduling.AllowTrailingOverflow, scheduling.RequireFullSlot} {
			slots := scheduling.Expand(w, policy)
			want := []time.Time{slotAt(t, "2024-01-10 09:00"), slotAt(t, "2024-01-10 09:30")}
			if len(slots) != len(want) {
				t.Fatalf("policy %v: got %d slots, want %d", policy, len(slots), len(want))
			}
			for i := range want {
				if !slots[i].Equal(want[i]) {
					t.Fatalf("policy %v: slot %d = %v, want %v", policy, i, slots[i], want[i])
				}
			}
		}
	})

	t.Run("trailing partial slot follows the boundary policy", func(t *testing.T) {
		t.Parallel()
		w := mustWindow(t, "2024-01-10", "09:00", "09:45")

		overflow := scheduling.Expand(w, scheduling.AllowTrailingOverflow)
		if len(overflow) != 2 || !overflow[1].Equal(slotAt(t, "2024-01-10 09:30")) {
			t.Fatalf("AllowTrailingOverflow: got %v, want [09:00 09:30]", overflow)
		}

		full := scheduling.Expand(w, scheduling.RequireFullSlot)
		if len(full) != 1 || !full[0].Equal(slotAt(t, "2024-01-10 09:00")) {
			t.Fatalf("RequireFullSlot: got %v, want [09:00]", full)
		}
	})

	t.Run("full-slot count is floor of window length over duration", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			start, end string
			want       int
		}{
			{"08:00", "08:30", 1},
			{"08:00", "09:50", 3},
			{"08:00", "12:00", 8},
			{"08:00", "08:20", 0},
		}
		for _, tc := range cases {
			w := mustWindow(t, "2024-01-10", tc.start, tc.end)
			if got := len(scheduling.Expand(w, scheduling.RequireFullSlot)); got != tc.want {
				t.Fatalf("window %s-%s: got %d slots, want %d", tc.start, tc.end, got, tc.want)
			}
		}
	})

	t.Run("multiple windows expand independently and merge sorted", func(t *testing.T) {
		t.Parallel()
		windows := []scheduling.Window{
			mustWindow(t, "2024-01-10", "14:00", "15:00"),
			mustWindow(t, "2024-01-10", "09:00", "10:00"),
		}
		slots := scheduling.ExpandAll(windows, scheduling.AllowTrailingOverflow)
		if len(slots) != 4 {
			t.Fatalf("got %d slots, want 4", len(slots))
		}
		for i := 1; i < len(slots); i++ {
			if !slots[i-1].Before(slots[i]) {
				t.Fatalf("slots out of order: %v", slots)
			}
		}
	})
}

func TestOccupancyFree(t *testing.T) {
	t.Parallel()

	nine := slotAt(t, "2024-01-10 09:00")
	nineThirty := slotAt(t, "2024-01-10 09:30")
	occ := scheduling.Occupancy{nine: 42}

	t.Run("unoccupied slot is free", func(t *testing.T) {
		t.Parallel()
		if !occ.Free(nineThirty, 0) {
			t.Fatal("expected 09:30 to be free")
		}
	})

	t.Run("occupied slot is taken for other patients", func(t *testing.T) {
		t.Parallel()
		if occ.Free(nine, 0) {
			t.Fatal("expected 09:00 to be taken")
		}
		if occ.Free(nine, 7) {
			t.Fatal("expected 09:00 to stay taken for a different reschedule")
		}
	})

	t.Run("rescheduling appointment sees its own slot as free", func(t *testing.T) {
		t.Parallel()
		if !occ.Free(nine, 42) {
			t.Fatal("expected self-exemption for appointment 42")
		}
	})
}

func TestFreeSlots(t *testing.T) {
	t.Parallel()

	windows := []scheduling.Window{mustWindow(t, "2024-01-10", "09:00", "10:00")}
	nine := slotAt(t, "2024-01-10 09:00")
	nineThirty := slotAt(t, "2024-01-10 09:30")

	t.Run("taken slots are filtered out", func(t *testing.T) {
		t.Parallel()
		free := scheduling.FreeSlots(windows, scheduling.Occupancy{nine: 1}, 0, scheduling.AllowTrailingOverflow)
		if len(free) != 1 || !free[0].Equal(nineThirty) {
			t.Fatalf("got %v, want [09:30]", free)
		}
	})

	t.Run("exempt appointment keeps its slot in the list", func(t *testing.T) {
		t.Parallel()
		free := scheduling.FreeSlots(windows, scheduling.Occupancy{nine: 1}, 1, scheduling.AllowTrailingOverflow)
		if len(free) != 2 {
			t.Fatalf("got %v, want both slots", free)
		}
	})
}

func TestContains(t *testing.T) {
	t.Parallel()

	windows := []scheduling.Window{mustWindow(t, "2024-01-10", "09:00", "10:00")}

	if !scheduling.Contains(windows, slotAt(t, "2024-01-10 09:30"), scheduling.AllowTrailingOverflow) {
		t.Fatal("expected 09:30 to be a derived candidate")
	}
	if scheduling.Contains(windows, slotAt(t, "2024-01-10 09:15"), scheduling.AllowTrailingOverflow) {
		t.Fatal("09:15 is not on the slot grid and must not be bookable")
	}
	if scheduling.Contains(windows, slotAt(t, "2024-01-10 10:00"), scheduling.AllowTrailingOverflow) {
		t.Fatal("10:00 is outside the window and must not be bookable")
	}
}

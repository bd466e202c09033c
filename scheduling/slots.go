// Package scheduling derives bookable appointment slots from doctor-declared
// availability windows and classifies candidate slots against the existing
// appointment ledger. It is pure logic: persistence and role checks live in
// the services layer.
package scheduling

import (
	"sort"
	"time"

	"github.com/pkg/errors"
)

// SlotDuration is the fixed length of every bookable slot.
const SlotDuration = 30 * time.Minute

// Wire formats shared with the HTTP layer.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
	SlotLayout  = "2006-01-02 15:04"
)

// BoundaryPolicy decides what happens to a partial slot at the end of a
// window, e.g. a 09:00-09:45 window and its 09:30 candidate.
type BoundaryPolicy int

const (
	// AllowTrailingOverflow emits a slot whenever it starts inside the
	// window, even if it would run past the declared end.
	AllowTrailingOverflow BoundaryPolicy = iota
	// RequireFullSlot emits a slot only when the full duration fits
	// inside the window.
	RequireFullSlot
)

// Window is one availability interval on a concrete date.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow parses the stored date/clock strings of an availability row into
// a Window. It rejects malformed input and start >= end; window rows that
// reach slot expansion are expected to already satisfy both.
func NewWindow(date, startClock, endClock string) (Window, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return Window{}, errors.Wrap(err, "invalid availability date")
	}
	start, err := time.Parse(ClockLayout, startClock)
	if err != nil {
		return Window{}, errors.Wrap(err, "invalid start time")
	}
	end, err := time.Parse(ClockLayout, endClock)
	if err != nil {
		return Window{}, errors.Wrap(err, "invalid end time")
	}

	w := Window{
		Start: day.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute),
		End:   day.Add(time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute),
	}
	if !w.Start.Before(w.End) {
		return Window{}, errors.New("availability start must be before end")
	}
	return w, nil
}

// Expand produces the candidate slot datetimes for a window:
// start, start+30m, start+60m, ... subject to the boundary policy.
func Expand(w Window, policy BoundaryPolicy) []time.Time {
	var slots []time.Time
	for slot := w.Start; slot.Before(w.End); slot = slot.Add(SlotDuration) {
		if policy == RequireFullSlot && slot.Add(SlotDuration).After(w.End) {
			break
		}
		slots = append(slots, slot)
	}
	return slots
}

// ExpandAll expands every window independently and returns the concatenated
// candidates in chronological order.
func ExpandAll(windows []Window, policy BoundaryPolicy) []time.Time {
	var slots []time.Time
	for _, w := range windows {
		slots = append(slots, Expand(w, policy)...)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	return slots
}

// Occupancy maps a slot datetime to the ID of the appointment holding it.
// Keys are normalized to UTC so ledger rows read back from the database
// compare equal to freshly parsed candidates.
type Occupancy map[time.Time]uint

// Take records an appointment occupying a slot.
func (o Occupancy) Take(slot time.Time, appointmentID uint) {
	o[slot.UTC()] = appointmentID
}

// Free reports whether the slot is open for booking. A slot occupied by the
// exempt appointment (the one currently being rescheduled) counts as free so
// a patient can keep their original time. exempt == 0 means no exemption.
func (o Occupancy) Free(slot time.Time, exempt uint) bool {
	holder, taken := o[slot.UTC()]
	if !taken {
		return true
	}
	return exempt != 0 && holder == exempt
}

// FreeSlots filters the expanded candidates of all windows down to the ones
// a patient can actually book.
func FreeSlots(windows []Window, occ Occupancy, exempt uint, policy BoundaryPolicy) []time.Time {
	var free []time.Time
	for _, slot := range ExpandAll(windows, policy) {
		if occ.Free(slot, exempt) {
			free = append(free, slot)
		}
	}
	return free
}

// Contains reports whether the candidate is one of the slots derived from the
// given windows. Booking rejects datetimes that were never offered.
func Contains(windows []Window, candidate time.Time, policy BoundaryPolicy) bool {
	for _, w := range windows {
		for _, slot := range Expand(w, policy) {
			if slot.Equal(candidate) {
				return true
			}
		}
	}
	return false
}

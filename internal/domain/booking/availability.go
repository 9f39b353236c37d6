package booking

import "github.com/google/uuid"

// Window is the minimal view of an existing active booking used for
// overlap checks.
type Window struct {
	BookingID uuid.UUID
	Slot      TimeSlot
}

// FirstConflict returns the first active window overlapping the candidate
// slot, or nil if the slot is free. exclude skips the booking being
// re-checked during a modification; pass uuid.Nil otherwise.
//
// This function is pure. It does not guarantee anything under concurrent
// writers; the coordinator re-runs it inside the same transaction that
// inserts the booking.
func FirstConflict(candidate TimeSlot, existing []Window, exclude uuid.UUID) *Window {
	for i := range existing {
		if exclude != uuid.Nil && existing[i].BookingID == exclude {
			continue
		}
		if candidate.Overlaps(existing[i].Slot) {
			return &existing[i]
		}
	}
	return nil
}

func IsAvailable(candidate TimeSlot, existing []Window, exclude uuid.UUID) bool {
	return FirstConflict(candidate, existing, exclude) == nil
}

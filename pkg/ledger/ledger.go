package ledger

import (
	"fmt"
	"sort"
	"time"
)

// Interval is a half-open occupation range [Start, End): touching
// endpoints do not conflict, so a bed can be cleared and replanted the
// same day.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (iv Interval) overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

// Allocation binds one succession to one bed for an occupation interval.
type Allocation struct {
	BedID            string    `json:"bed_id"`
	BedName          string    `json:"bed_name"`
	SuccessionNumber int       `json:"succession_number"`
	OccupationStart  time.Time `json:"occupation_start"`
	OccupationEnd    time.Time `json:"occupation_end"`
	Method           string    `json:"method"`
}

func (a Allocation) interval() Interval { return Interval{a.OccupationStart, a.OccupationEnd} }

// ConflictError reports a rejected allocation and the existing booking
// it collided with. The only anomaly in the planning flow that is
// surfaced to the user instead of absorbed.
type ConflictError struct {
	BedID    string
	BedName  string
	Existing Allocation
}

func (e *ConflictError) Error() string {
	name := e.BedName
	if name == "" {
		name = e.BedID
	}
	return fmt.Sprintf("bed %s is already occupied by succession %d from %s to %s",
		name, e.Existing.SuccessionNumber,
		e.Existing.OccupationStart.Format("2006-01-02"),
		e.Existing.OccupationEnd.Format("2006-01-02"))
}

// Ledger tracks bed occupancy for one planning session. In-memory only,
// cleared whenever a new plan is calculated. Not safe for concurrent
// mutation; the owning session serializes access.
type Ledger struct {
	bySuccession map[int]Allocation
}

func New() *Ledger {
	return &Ledger{bySuccession: map[int]Allocation{}}
}

// Conflicts reports whether the candidate interval overlaps any existing
// allocation on the bed. An allocation belonging to the same succession
// is ignored, since allocating replaces it.
func (l *Ledger) Conflicts(bedID string, iv Interval, successionNumber int) bool {
	_, ok := l.conflictWith(bedID, iv, successionNumber)
	return ok
}

func (l *Ledger) conflictWith(bedID string, iv Interval, successionNumber int) (Allocation, bool) {
	for n, a := range l.bySuccession {
		if n == successionNumber || a.BedID != bedID {
			continue
		}
		if iv.overlaps(a.interval()) {
			return a, true
		}
	}
	return Allocation{}, false
}

// Allocate books the succession onto the bed, replacing any prior
// allocation the succession had. On conflict nothing changes and a
// *ConflictError is returned.
func (l *Ledger) Allocate(bedID, bedName string, successionNumber int, iv Interval, method string) (Allocation, error) {
	if existing, ok := l.conflictWith(bedID, iv, successionNumber); ok {
		return Allocation{}, &ConflictError{BedID: bedID, BedName: bedName, Existing: existing}
	}
	a := Allocation{
		BedID:            bedID,
		BedName:          bedName,
		SuccessionNumber: successionNumber,
		OccupationStart:  iv.Start,
		OccupationEnd:    iv.End,
		Method:           method,
	}
	l.bySuccession[successionNumber] = a
	return a, nil
}

// Reallocate moves the succession's existing allocation to another bed,
// keeping its interval. Atomic: on conflict the prior allocation stays.
func (l *Ledger) Reallocate(successionNumber int, newBedID, newBedName string) (Allocation, error) {
	prior, ok := l.bySuccession[successionNumber]
	if !ok {
		return Allocation{}, fmt.Errorf("succession %d has no allocation", successionNumber)
	}
	return l.Allocate(newBedID, newBedName, successionNumber, prior.interval(), prior.Method)
}

// Deallocate removes the succession's allocation. Idempotent.
func (l *Ledger) Deallocate(successionNumber int) {
	delete(l.bySuccession, successionNumber)
}

func (l *Ledger) Clear() {
	l.bySuccession = map[int]Allocation{}
}

func (l *Ledger) AllocationFor(successionNumber int) (Allocation, bool) {
	a, ok := l.bySuccession[successionNumber]
	return a, ok
}

// All returns allocations ordered by succession number.
func (l *Ledger) All() []Allocation {
	out := make([]Allocation, 0, len(l.bySuccession))
	for _, a := range l.bySuccession {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SuccessionNumber < out[j].SuccessionNumber })
	return out
}

// Renumber drops the removed succession's allocation and shifts every
// higher succession number down by one, keeping allocations aligned
// with a plan whose successions were renumbered after a removal.
func (l *Ledger) Renumber(removed int) {
	delete(l.bySuccession, removed)
	nums := make([]int, 0, len(l.bySuccession))
	for n := range l.bySuccession {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	for _, n := range nums {
		if n > removed {
			a := l.bySuccession[n]
			a.SuccessionNumber = n - 1
			delete(l.bySuccession, n)
			l.bySuccession[n-1] = a
		}
	}
}

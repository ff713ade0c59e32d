package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iv(startDay, endDay int) Interval {
	base := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	return Interval{Start: base.AddDate(0, 0, startDay), End: base.AddDate(0, 0, endDay)}
}

func TestAllocateAndConflict(t *testing.T) {
	l := New()

	a, err := l.Allocate("bed-1", "Block 1 / Bed 1", 1, iv(0, 30), "direct")
	require.NoError(t, err)
	assert.Equal(t, 1, a.SuccessionNumber)

	before := l.All()
	_, err = l.Allocate("bed-1", "Block 1 / Bed 1", 2, iv(15, 45), "direct")
	require.Error(t, err)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "bed-1", conflict.BedID)
	assert.Equal(t, 1, conflict.Existing.SuccessionNumber)
	assert.Contains(t, conflict.Error(), "already occupied by succession 1")

	// rejected allocation left the ledger untouched
	assert.Equal(t, before, l.All())
}

func TestTouchingEndpointsDoNotConflict(t *testing.T) {
	l := New()
	_, err := l.Allocate("bed-1", "", 1, iv(0, 30), "direct")
	require.NoError(t, err)
	// half-open intervals: clearing day equals next planting day
	_, err = l.Allocate("bed-1", "", 2, iv(30, 60), "direct")
	assert.NoError(t, err)
}

func TestDifferentBedsNeverConflict(t *testing.T) {
	l := New()
	_, err := l.Allocate("bed-1", "", 1, iv(0, 30), "direct")
	require.NoError(t, err)
	_, err = l.Allocate("bed-2", "", 2, iv(0, 30), "direct")
	assert.NoError(t, err)
}

func TestReAllocateSameSuccessionReplaces(t *testing.T) {
	l := New()
	_, err := l.Allocate("bed-1", "", 1, iv(0, 30), "direct")
	require.NoError(t, err)
	// moving succession 1 onto an interval overlapping only itself is fine
	_, err = l.Allocate("bed-1", "", 1, iv(10, 40), "direct")
	require.NoError(t, err)
	require.Len(t, l.All(), 1)
	a, ok := l.AllocationFor(1)
	require.True(t, ok)
	assert.Equal(t, iv(10, 40).Start, a.OccupationStart)
}

func TestReallocateAtomic(t *testing.T) {
	l := New()
	_, err := l.Allocate("bed-1", "Bed 1", 1, iv(0, 30), "direct")
	require.NoError(t, err)
	_, err = l.Allocate("bed-2", "Bed 2", 2, iv(0, 30), "direct")
	require.NoError(t, err)

	// bed-2 is taken for that interval; succession 1 must stay on bed-1
	_, err = l.Reallocate(1, "bed-2", "Bed 2")
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	a, ok := l.AllocationFor(1)
	require.True(t, ok)
	assert.Equal(t, "bed-1", a.BedID)

	// moving to a free bed keeps the original interval
	moved, err := l.Reallocate(1, "bed-3", "Bed 3")
	require.NoError(t, err)
	assert.Equal(t, "bed-3", moved.BedID)
	assert.Equal(t, iv(0, 30).Start, moved.OccupationStart)
}

func TestReallocateMissing(t *testing.T) {
	l := New()
	_, err := l.Reallocate(7, "bed-1", "")
	assert.Error(t, err)
}

func TestDeallocateIdempotent(t *testing.T) {
	l := New()
	_, err := l.Allocate("bed-1", "", 1, iv(0, 30), "direct")
	require.NoError(t, err)
	l.Deallocate(1)
	l.Deallocate(1)
	_, ok := l.AllocationFor(1)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	l := New()
	_, _ = l.Allocate("bed-1", "", 1, iv(0, 30), "direct")
	_, _ = l.Allocate("bed-2", "", 2, iv(0, 30), "direct")
	l.Clear()
	assert.Empty(t, l.All())
}

func TestRenumberShiftsHigherAllocations(t *testing.T) {
	l := New()
	_, _ = l.Allocate("bed-1", "", 1, iv(0, 30), "direct")
	_, _ = l.Allocate("bed-2", "", 2, iv(40, 70), "direct")
	_, _ = l.Allocate("bed-3", "", 3, iv(80, 110), "direct")

	l.Renumber(2)

	all := l.All()
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].SuccessionNumber)
	assert.Equal(t, "bed-1", all[0].BedID)
	assert.Equal(t, 2, all[1].SuccessionNumber)
	assert.Equal(t, "bed-3", all[1].BedID)
}

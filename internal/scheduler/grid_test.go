package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestBuildGrid_SevenWorkingWindows(t *testing.T) {
	g := BuildGrid(monday.Add(50 * time.Hour)) // Wednesday; normalized to Monday

	assert.Equal(t, monday, g.Anchor)
	for i, s := range g.Slots {
		day := monday.AddDate(0, 0, i)
		assert.Equal(t, day, s.Day)
		assert.Equal(t, day.Add(9*time.Hour), s.Cursor, "slot %d start", i)
		assert.Equal(t, day.Add(18*time.Hour), s.End, "slot %d end", i)
		assert.Equal(t, 540, s.Remaining(), "slot %d capacity", i)
	}
}

func TestDaySlot_ConsumeAdvancesCursor(t *testing.T) {
	g := BuildGrid(monday)
	slot := &g.Slots[0]

	start, end, err := slot.Consume(90)
	require.NoError(t, err)
	assert.Equal(t, monday.Add(9*time.Hour), start)
	assert.Equal(t, monday.Add(10*time.Hour+30*time.Minute), end)
	assert.Equal(t, 450, slot.Remaining())

	start, _, err = slot.Consume(450)
	require.NoError(t, err)
	assert.Equal(t, end, start, "second reservation starts where the first ended")
	assert.Equal(t, 0, slot.Remaining())
}

func TestDaySlot_ConsumeBeyondCapacity(t *testing.T) {
	g := BuildGrid(monday)
	slot := &g.Slots[2]
	_, _, err := slot.Consume(500)
	require.NoError(t, err)

	before := slot.Cursor
	_, _, err = slot.Consume(41)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, before, slot.Cursor, "failed reservation leaves the cursor alone")
}

func TestGrid_OverflowStacksAfterTail(t *testing.T) {
	g := BuildGrid(monday)
	sunday := monday.AddDate(0, 0, 6)
	_, _, err := g.Slots[6].Consume(120)
	require.NoError(t, err)

	s1, e1 := g.Overflow(600)
	assert.Equal(t, sunday.Add(11*time.Hour), s1, "overflow starts after Sunday's placed work")
	assert.Equal(t, s1.Add(600*time.Minute), e1)

	s2, e2 := g.Overflow(30)
	assert.Equal(t, e1, s2)
	assert.Equal(t, e1.Add(30*time.Minute), e2)
	assert.Equal(t, 540-120, g.Slots[6].Remaining(), "overflow does not use Sunday's capacity")
}

func TestBuildGrid_FreshPerCall(t *testing.T) {
	a := BuildGrid(monday)
	_, _, err := a.Slots[0].Consume(540)
	require.NoError(t, err)

	b := BuildGrid(monday)
	assert.Equal(t, 540, b.Slots[0].Remaining())
}

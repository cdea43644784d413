package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock управляемые часы для тестов
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeTracker() (*Tracker, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	return NewTracker(clock.Now), clock
}

func TestTracker_PercentFromBlocks(t *testing.T) {
	tr, _ := newFakeTracker()
	tr.Start(PhaseChecking, 100, 4)

	tr.CompleteBlock()
	assert.InDelta(t, 25.0, tr.Snapshot().Percent, 0.001)

	// сокращение плана не влияет на процент по блокам
	tr.ReducePlanned(50)
	tr.CompleteBlock()
	assert.InDelta(t, 50.0, tr.Snapshot().Percent, 0.001)
}

func TestTracker_PercentFromBytesWithoutBlockTotal(t *testing.T) {
	tr, _ := newFakeTracker()
	tr.Start(PhaseTransferring, 200, 0)

	tr.AddTransferred(50)
	assert.InDelta(t, 25.0, tr.Snapshot().Percent, 0.001)

	tr.AddTransferred(500)
	assert.InDelta(t, 100.0, tr.Snapshot().Percent, 0.001)
}

func TestTracker_ReducePlannedFloor(t *testing.T) {
	tr, _ := newFakeTracker()
	tr.Start(PhaseTransferring, 100, 2)

	tr.AddTransferred(30)
	tr.ReducePlanned(60)
	assert.Equal(t, int64(40), tr.Snapshot().BytesPlanned)

	// план не опускается ниже уже переданного
	tr.ReducePlanned(60)
	assert.Equal(t, int64(30), tr.Snapshot().BytesPlanned)
}

func TestTracker_RateAndETA(t *testing.T) {
	tr, clock := newFakeTracker()
	tr.Start(PhaseTransferring, 1000, 0)

	s := tr.Snapshot()
	assert.False(t, s.ETAKnown, "no elapsed time yet")
	assert.Equal(t, "unknown", FormatETA(s))

	clock.Advance(2 * time.Second)
	s = tr.Snapshot()
	assert.Zero(t, s.Rate)
	assert.False(t, s.ETAKnown, "zero rate gives unknown ETA")

	tr.AddTransferred(200)
	s = tr.Snapshot()
	assert.InDelta(t, 100.0, s.Rate, 0.001)
	assert.True(t, s.ETAKnown)
	assert.Equal(t, 8*time.Second, s.ETA)
	assert.Equal(t, 2*time.Second, s.Elapsed)
}

func TestTracker_CheckingCountsProcessedBytes(t *testing.T) {
	tr, clock := newFakeTracker()
	tr.Start(PhaseChecking, 400, 4)

	tr.AddProcessed(100)
	tr.AddProcessed(100)
	clock.Advance(time.Second)

	s := tr.Snapshot()
	assert.Equal(t, PhaseChecking, s.Phase)
	assert.Equal(t, int64(200), s.BytesProcessed)
	assert.Zero(t, s.BytesTransferred)
	assert.InDelta(t, 200.0, s.Rate, 0.001)
	assert.Equal(t, time.Second, s.ETA)
}

func TestTracker_EnterValidatingResets(t *testing.T) {
	tr, _ := newFakeTracker()
	tr.Start(PhaseChecking, 300, 3)
	tr.AddProcessed(300)
	tr.CompleteBlock()
	tr.CompleteBlock()
	tr.CompleteBlock()

	tr.EnterValidating()
	s := tr.Snapshot()
	assert.Equal(t, PhaseValidating, s.Phase)
	assert.Zero(t, s.BytesProcessed)
	assert.Zero(t, s.Percent)

	tr.AddProcessed(100)
	s = tr.Snapshot()
	assert.Equal(t, int64(100), s.BytesProcessed)
	assert.InDelta(t, 33.333, s.Percent, 0.01)
}

func TestTracker_SetCurrent(t *testing.T) {
	tr, _ := newFakeTracker()
	tr.Start(PhaseTransferring, 10, 1)
	tr.SetCurrent("dir/file.bin", 3)

	s := tr.Snapshot()
	assert.Equal(t, "dir/file.bin", s.CurrentFile)
	assert.Equal(t, 3, s.CurrentBlock)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "16 MiB", FormatBytes(16<<20))
	assert.Equal(t, "0 B", FormatBytes(-5))
	assert.Equal(t, "0 B/s", FormatRate(0))
	assert.Equal(t, "1.0 KiB/s", FormatRate(1024))

	tests := []struct {
		expected string
		d        time.Duration
	}{
		{d: 5 * time.Second, expected: "5s"},
		{d: 3*time.Minute + 4*time.Second, expected: "3m 4s"},
		{d: time.Hour + 2*time.Minute + 9*time.Second, expected: "1h 2m"},
		{d: -time.Second, expected: "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.d))
		})
	}
}

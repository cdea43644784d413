// Package progress keeps the per-phase byte and block counters of a transfer
// and derives percentage, rate and ETA from them.
package progress

import (
	"math"
	"sync"
	"time"
)

// Phase фаза передачи
type Phase string

const (
	// PhaseChecking получатель сверяет локальные блоки с манифестом
	PhaseChecking Phase = "checking"
	// PhaseTransferring блоки идут по сети
	PhaseTransferring Phase = "transferring"
	// PhaseValidating повторная проверка записанного дерева
	PhaseValidating Phase = "validating"
)

// Snapshot is an immutable view of the tracker at one moment.
type Snapshot struct {
	Phase            Phase
	CurrentFile      string
	CurrentBlock     int
	BytesTransferred int64
	BytesProcessed   int64
	BytesPlanned     int64
	TotalSize        int64
	CompletedBlocks  int
	TotalBlocks      int
	Percent          float64
	Rate             float64 // байт в секунду
	ETA              time.Duration
	ETAKnown         bool
	Elapsed          time.Duration
}

// Tracker counts bytes and blocks for the active phase.
// Counters only grow inside a phase; entering the validating phase resets the processed counters.
type Tracker struct {
	start            time.Time
	now              func() time.Time
	phase            Phase
	currentFile      string
	bytesTransferred int64
	bytesProcessed   int64
	bytesPlanned     int64
	totalSize        int64
	currentBlock     int
	completedBlocks  int
	validatedBlocks  int
	totalBlocks      int
	mu               sync.Mutex
}

// NewTracker creates a tracker. now may be nil, time.Now is used then.
func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{now: now, phase: PhaseTransferring}
}

// Start resets the tracker for a transfer of totalSize bytes in totalBlocks blocks.
// totalBlocks may be 0 when the block total is unknown (sender side).
func (t *Tracker) Start(phase Phase, totalSize int64, totalBlocks int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.start = t.now()
	t.phase = phase
	t.totalSize = totalSize
	t.totalBlocks = totalBlocks
	t.bytesPlanned = totalSize
	t.bytesTransferred = 0
	t.bytesProcessed = 0
	t.completedBlocks = 0
	t.validatedBlocks = 0
	t.currentFile = ""
	t.currentBlock = 0
}

// SetPhase switches between checking and transferring without touching counters.
// Use EnterValidating for the validating phase.
func (t *Tracker) SetPhase(phase Phase) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phase = phase
}

// EnterValidating switches to the validating phase and resets its counters to zero.
func (t *Tracker) EnterValidating() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phase = PhaseValidating
	t.bytesProcessed = 0
	t.validatedBlocks = 0
}

// SetCurrent records the file and block being worked on.
func (t *Tracker) SetCurrent(path string, block int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentFile = path
	t.currentBlock = block
}

// AddProcessed counts bytes examined locally (checking) or re-hashed (validating).
func (t *Tracker) AddProcessed(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bytesProcessed += n
	if t.phase == PhaseValidating {
		t.validatedBlocks++
	}
}

// AddTransferred counts bytes that actually crossed the wire.
func (t *Tracker) AddTransferred(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bytesTransferred += n
}

// ReducePlanned shrinks the planned wire bytes by a reused block, floored at bytes already transferred.
func (t *Tracker) ReducePlanned(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bytesPlanned -= n
	if t.bytesPlanned < t.bytesTransferred {
		t.bytesPlanned = t.bytesTransferred
	}
}

// CompleteBlock counts one block resolved as reused or fetched-and-written.
func (t *Tracker) CompleteBlock() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.completedBlocks++
}

// Snapshot returns the current counters with derived percent, rate and ETA.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{
		Phase:            t.phase,
		CurrentFile:      t.currentFile,
		CurrentBlock:     t.currentBlock,
		BytesTransferred: t.bytesTransferred,
		BytesProcessed:   t.bytesProcessed,
		BytesPlanned:     t.bytesPlanned,
		TotalSize:        t.totalSize,
		CompletedBlocks:  t.completedBlocks,
		TotalBlocks:      t.totalBlocks,
	}
	if !t.start.IsZero() {
		s.Elapsed = t.now().Sub(t.start)
	}

	phaseBytes, phasePlanned := t.phaseCounters()

	// блоки стабильнее байт: план байт сокращается по ходу проверки
	switch {
	case t.totalBlocks > 0:
		done := t.completedBlocks
		if t.phase == PhaseValidating {
			done = t.validatedBlocks
		}
		s.Percent = percent(float64(done), float64(t.totalBlocks))
	case phasePlanned > 0:
		s.Percent = percent(float64(phaseBytes), float64(phasePlanned))
	}

	if secs := s.Elapsed.Seconds(); secs > 0 {
		s.Rate = float64(phaseBytes) / secs
	}

	if s.Rate > 0 && !math.IsInf(s.Rate, 0) && !math.IsNaN(s.Rate) {
		remaining := float64(phasePlanned - phaseBytes)
		if remaining < 0 {
			remaining = 0
		}
		eta := remaining / s.Rate
		if !math.IsInf(eta, 0) && !math.IsNaN(eta) {
			s.ETA = time.Duration(eta * float64(time.Second))
			s.ETAKnown = true
		}
	}

	return s
}

// phaseCounters возвращает (байты фазы, план фазы)
func (t *Tracker) phaseCounters() (int64, int64) {
	switch t.phase {
	case PhaseChecking, PhaseValidating:
		return t.bytesProcessed, t.totalSize
	default:
		return t.bytesTransferred, t.bytesPlanned
	}
}

func percent(done, total float64) float64 {
	if total <= 0 {
		return 0
	}
	p := done / total * 100
	if p > 100 {
		p = 100
	}
	return p
}

package solver

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/domino14/chomp/board"
	"github.com/domino14/chomp/move"
)

const numShards = 64

// A rough per-entry cost: map bucket overhead, the key's string header and
// packed cells, and the entry itself.
const estimatedEntrySize = 96

// combin.Binomial stays within an int up to here.
const maxExactBinomialN = 60

// TableEntry is what we remember about a position. hasMove is false exactly
// when the position is terminal.
type TableEntry struct {
	outcome board.Outcome
	hasMove bool
	play    move.Move
}

func (t TableEntry) Outcome() board.Outcome {
	return t.outcome
}

// Move returns the recommended move, or nil for a terminal position.
func (t TableEntry) Move() *move.Move {
	if !t.hasMove {
		return nil
	}
	m := t.play
	return &m
}

type TableLock interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type FakeLock struct{}

func (f FakeLock) Lock()    {}
func (f FakeLock) Unlock()  {}
func (f FakeLock) RLock()   {}
func (f FakeLock) RUnlock() {}

type shard struct {
	TableLock
	entries map[board.Key]TableEntry
}

// Stats are the running counters of a TranspositionTable.
type Stats struct {
	Entries int    `yaml:"entries"`
	Created uint64 `yaml:"created"`
	Lookups uint64 `yaml:"lookups"`
	Hits    uint64 `yaml:"hits"`
}

// TranspositionTable maps positions to their solved values. Lookups are
// exact: an entry is only returned for a board with the very same key.
// Nothing is ever evicted; a value stored for a position stays correct for
// as long as the table lives.
type TranspositionTable struct {
	shards  [numShards]shard
	created atomic.Uint64
	lookups atomic.Uint64
	hits    atomic.Uint64
}

// NewTranspositionTable returns an empty table that is safe for concurrent
// use.
func NewTranspositionTable() *TranspositionTable {
	t := &TranspositionTable{}
	for i := range t.shards {
		t.shards[i].entries = make(map[board.Key]TableEntry)
	}
	t.SetMultiThreadedMode()
	return t
}

// SetSingleThreadedMode drops all locking. It must not be called while the
// table is in use.
func (t *TranspositionTable) SetSingleThreadedMode() {
	for i := range t.shards {
		t.shards[i].TableLock = FakeLock{}
	}
}

// SetMultiThreadedMode guards every shard with a reader/writer lock. It must
// not be called while the table is in use.
func (t *TranspositionTable) SetMultiThreadedMode() {
	for i := range t.shards {
		t.shards[i].TableLock = new(sync.RWMutex)
	}
}

func (t *TranspositionTable) shardFor(b *board.Board) *shard {
	return &t.shards[b.Hash()%numShards]
}

func (t *TranspositionTable) lookup(b *board.Board) (TableEntry, bool) {
	s := t.shardFor(b)
	t.lookups.Add(1)
	s.RLock()
	e, ok := s.entries[b.Key()]
	s.RUnlock()
	if ok {
		t.hits.Add(1)
	}
	return e, ok
}

// store overwrites whatever is there. Two writers racing on the same board
// always carry the same value.
func (t *TranspositionTable) store(b *board.Board, e TableEntry) {
	s := t.shardFor(b)
	s.Lock()
	s.entries[b.Key()] = e
	s.Unlock()
	t.created.Add(1)
}

// Lookup returns the stored entry for b, if there is one.
func (t *TranspositionTable) Lookup(b *board.Board) (TableEntry, bool) {
	return t.lookup(b)
}

func (t *TranspositionTable) Len() int {
	n := 0
	for i := range t.shards {
		s := &t.shards[i]
		s.RLock()
		n += len(s.entries)
		s.RUnlock()
	}
	return n
}

func (t *TranspositionTable) Stats() Stats {
	return Stats{
		Entries: t.Len(),
		Created: t.created.Load(),
		Lookups: t.lookups.Load(),
		Hits:    t.hits.Load(),
	}
}

// ReachablePositions is the number of distinct positions that can come up
// in a game on a width x height board. Every position is a staircase, so
// this is the number of monotone lattice paths across the rectangle,
// C(width+height, width). The empty staircase is in there too, although the
// poisoned piece is never eaten during a search.
func ReachablePositions(width, height int) float64 {
	n := width + height
	if n <= maxExactBinomialN {
		return float64(combin.Binomial(n, width))
	}
	return combin.GeneralizedBinomial(float64(n), float64(width))
}

// Reset clears the table and sizes it for solving width x height boards,
// using at most fractionOfMemory of the system's memory for the initial
// allocation.
func (t *TranspositionTable) Reset(fractionOfMemory float64, width, height int) {
	totalMem := memory.TotalMemory()
	positions := ReachablePositions(width, height)
	budget := fractionOfMemory * float64(totalMem) / estimatedEntrySize
	desired := math.Min(positions, budget)
	if desired < numShards || math.IsNaN(desired) {
		desired = numShards
	}
	perShard := int(desired / numShards)

	for i := range t.shards {
		s := &t.shards[i]
		s.Lock()
		s.entries = make(map[board.Key]TableEntry, perShard)
		s.Unlock()
	}
	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)

	log.Info().
		Int("width", width).
		Int("height", height).
		Float64("reachable-positions", positions).
		Int("presized-elems", perShard*numShards).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("transposition-table-size")
}

package solver

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/chomp/board"
	"github.com/domino14/chomp/move"
)

// thanks Wikipedia, minus the depth and the window:
/*
function negamax(node) is
    if node is a terminal node then
        return the value of node for the side to move
    value := −∞
    foreach child in generateMoves(node) do
        value := max(value, −negamax(child))
    return value
**/

// Solver solves chomp positions exactly. It owns a transposition table that
// lives as long as the Solver does; create one Solver per session and reuse
// it. A Solver is safe for concurrent use as long as its table is in
// multi-threaded mode (the default).
type Solver struct {
	ttable *TranspositionTable

	// firstWinOptim: stop looking at children once one of them is a win
	// for us. Nothing can beat it, and ties keep the earlier move anyway,
	// so this changes neither the value nor the recommended move.
	firstWinOptim bool
	threads       int

	nodes atomic.Uint64
}

type Option func(*Solver)

// WithTranspositionTable makes the solver use (and possibly share) tt.
func WithTranspositionTable(tt *TranspositionTable) Option {
	return func(s *Solver) {
		s.ttable = tt
	}
}

func WithFirstWinCutoff(on bool) Option {
	return func(s *Solver) {
		s.firstWinOptim = on
	}
}

// WithThreads bounds how many boards EvaluateMany works on at once.
func WithThreads(threads int) Option {
	return func(s *Solver) {
		s.threads = max(1, threads)
	}
}

func NewSolver(opts ...Option) *Solver {
	s := &Solver{
		firstWinOptim: true,
		threads:       max(1, runtime.NumCPU()-1),
	}
	for _, o := range opts {
		o(s)
	}
	if s.ttable == nil {
		s.ttable = NewTranspositionTable()
	}
	return s
}

func (s *Solver) TranspositionTable() *TranspositionTable {
	return s.ttable
}

func (s *Solver) SetTranspositionTable(tt *TranspositionTable) {
	s.ttable = tt
}

func (s *Solver) SetFirstWinOptim(w bool) {
	s.firstWinOptim = w
}

func (s *Solver) Threads() int {
	return s.threads
}

// Nodes is the number of positions visited so far, cache hits included.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

func (s *Solver) Stats() Stats {
	return s.ttable.Stats()
}

// Evaluate returns the value of b for the player about to move.
func (s *Solver) Evaluate(b *board.Board) board.Outcome {
	o, _ := s.BestMove(b)
	return o
}

// BestMove returns the value of b for the player about to move, and the move
// that achieves it. The move is nil if and only if b is terminal. When
// several moves are equally good, the first one in b.LegalMoves order wins.
func (s *Solver) BestMove(b *board.Board) (board.Outcome, *move.Move) {
	if b == nil {
		panic("solver: nil board")
	}
	tstart := time.Now()
	nodesBefore := s.nodes.Load()
	e := s.negamax(b)
	log.Debug().
		Int("pieces", b.Pieces()).
		Str("outcome", e.outcome.String()).
		Interface("move", e.Move()).
		Uint64("nodes", s.nodes.Load()-nodesBefore).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	return e.outcome, e.Move()
}

func (s *Solver) negamax(b *board.Board) TableEntry {
	s.nodes.Add(1)
	if e, ok := s.ttable.lookup(b); ok {
		return e
	}
	if ts := b.TerminalState(); ts != board.Undetermined {
		e := TableEntry{outcome: ts}
		s.ttable.store(b, e)
		return e
	}
	children := b.LegalMoves()
	if len(children) == 0 {
		// A non-terminal board always has a piece to eat.
		panic("solver: no legal moves on a non-terminal board")
	}
	best := TableEntry{outcome: board.Loss - 1}
	for _, child := range children {
		value := s.negamax(child.Board).outcome.Negate()
		if value > best.outcome {
			best = TableEntry{outcome: value, hasMove: true, play: child.Move}
		}
		if s.firstWinOptim && best.outcome == board.Win {
			break
		}
	}
	s.ttable.store(b, best)
	return best
}

// ScoredMove is a legal move and the value it leads to for the player who
// makes it.
type ScoredMove struct {
	Move    move.Move     `yaml:"move"`
	Outcome board.Outcome `yaml:"outcome"`
}

// ScoreMoves solves every child of b. The moves come back in LegalMoves
// order.
func (s *Solver) ScoreMoves(b *board.Board) []ScoredMove {
	return lo.Map(b.LegalMoves(), func(c board.Child, _ int) ScoredMove {
		return ScoredMove{Move: c.Move, Outcome: s.Evaluate(c.Board).Negate()}
	})
}

// Line returns the principal variation from b: the moves both sides make
// under optimal play, following the solver's own recommendations, until only
// the poisoned piece is left.
func (s *Solver) Line(b *board.Board) []move.Move {
	var line []move.Move
	for {
		_, m := s.BestMove(b)
		if m == nil {
			return line
		}
		line = append(line, *m)
		next, err := b.Apply(*m)
		if err != nil {
			// The solver only recommends legal moves.
			panic(err)
		}
		b = next
	}
}

package solver

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/chomp/board"
	"github.com/domino14/chomp/move"
)

type Result struct {
	Outcome board.Outcome `yaml:"outcome"`
	Move    *move.Move    `yaml:"move,omitempty"`
}

// EvaluateMany solves several independent boards at once, all sharing this
// solver's transposition table. At most Threads() boards are solved at the
// same time. Once ctx is done no new boards are started, but a board that is
// already being solved is always solved to the end.
func (s *Solver) EvaluateMany(ctx context.Context, boards []*board.Board) ([]Result, error) {
	results := make([]Result, len(boards))
	g := errgroup.Group{}
	g.SetLimit(s.threads)
	log.Debug().Int("boards", len(boards)).Int("threads", s.threads).Msg("evaluate-many")

	for i, b := range boards {
		if ctx.Err() != nil {
			break
		}
		i, b := i, b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o, m := s.BestMove(b)
			results[i] = Result{Outcome: o, Move: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

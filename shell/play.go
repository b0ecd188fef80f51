package shell

import (
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/domino14/chomp/move"
)

const opponentPrompt = "Enter opponent's move as two comma/space-separated 1-indexed integers, horizontal then vertical"

// play is the computer-versus-opponent loop. We make the solver's move, ask
// for the opponent's reply, and go on until one side is left with only the
// poisoned piece.
func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if err := sc.requireBoard(); err != nil {
		return nil, err
	}
	if len(cmd.args) > 0 {
		return nil, errors.New("play takes no arguments; use `new` to pick a board size")
	}
	for {
		o, m := sc.solver.BestMove(sc.curBoard)
		if m == nil {
			return msg("Game Over!"), nil
		}
		sc.showMessage(fmt.Sprintf("best_outcome=%d with move: %v", o, m))
		next, err := sc.curBoard.Apply(*m)
		if err != nil {
			// The solver only recommends legal moves.
			panic(err)
		}
		sc.curBoard = next
		if len(sc.curBoard.LegalMoves()) == 0 {
			// The opponent has to eat the poisoned piece.
			return msg("Game Over!"), nil
		}

		for {
			sc.showMessage(opponentPrompt)
			line, err := sc.in.Readline()
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				log.Debug().Msg("leaving game loop")
				return msg(sc.curBoard.String()), nil
			}
			if err != nil {
				return nil, err
			}
			reply, err := move.FromString(line)
			if err == nil {
				next, err = sc.curBoard.Apply(reply)
			}
			if err != nil {
				sc.showError(err)
				continue
			}
			sc.curBoard = next
			break
		}
	}
}

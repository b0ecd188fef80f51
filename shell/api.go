package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"

	"github.com/domino14/chomp/board"
	"github.com/domino14/chomp/config"
	"github.com/domino14/chomp/move"
	"github.com/domino14/chomp/solver"
)

var errNoBoard = errors.New("no board; start one with the `new` command")

func (sc *ShellController) requireBoard() error {
	if sc.curBoard == nil {
		return errNoBoard
	}
	return nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usageText), nil
	}
	text, ok := helpTopics[cmd.args[0]]
	if !ok {
		return nil, fmt.Errorf("there is no help text for the topic %v", cmd.args[0])
	}
	return msg(text), nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	dims, err := intArgs(cmd.args,
		sc.config.GetInt(config.ConfigWidth), sc.config.GetInt(config.ConfigHeight))
	if err != nil {
		return nil, err
	}
	if err := sc.newBoard(dims[0], dims[1]); err != nil {
		return nil, err
	}
	return msg(sc.curBoard.String()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if err := sc.requireBoard(); err != nil {
		return nil, err
	}
	return msg(sc.curBoard.String()), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if err := sc.requireBoard(); err != nil {
		return nil, err
	}
	o, m := sc.solver.BestMove(sc.curBoard)
	if m == nil {
		return msg(fmt.Sprintf("best_outcome=%d; only the poisoned piece is left", o)), nil
	}
	return msg(fmt.Sprintf("best_outcome=%d with move: %v", o, m)), nil
}

func (sc *ShellController) move(cmd *shellcmd) (*Response, error) {
	if err := sc.requireBoard(); err != nil {
		return nil, err
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: move <x> <y>")
	}
	m, err := move.FromString(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	b, err := sc.curBoard.Apply(m)
	if err != nil {
		return nil, err
	}
	sc.curBoard = b
	return msg(sc.curBoard.String()), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	if err := sc.requireBoard(); err != nil {
		return nil, err
	}
	scored := sc.solver.ScoreMoves(sc.curBoard)
	if len(scored) == 0 {
		return msg("no legal moves"), nil
	}
	rows := lo.Map(scored, func(sm solver.ScoredMove, idx int) string {
		return fmt.Sprintf("%3d: %-10s%v", idx+1, sm.Move.String(), sm.Outcome)
	})
	winners := lo.CountBy(scored, func(sm solver.ScoredMove) bool {
		return sm.Outcome == board.Win
	})
	rows = append(rows, fmt.Sprintf("%d of %d moves win", winners, len(scored)))
	return msg(strings.Join(rows, "\n")), nil
}

func (sc *ShellController) line(cmd *shellcmd) (*Response, error) {
	if err := sc.requireBoard(); err != nil {
		return nil, err
	}
	pv := sc.solver.Line(sc.curBoard)
	if len(pv) == 0 {
		return msg("no moves left"), nil
	}
	var sb strings.Builder
	for i, m := range pv {
		fmt.Fprintf(&sb, "%d: %v\n", i+1, m)
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) random(cmd *shellcmd) (*Response, error) {
	if err := sc.requireBoard(); err != nil {
		return nil, err
	}
	children := sc.curBoard.LegalMoves()
	if len(children) == 0 {
		return nil, errors.New("no moves left")
	}
	c := children[frand.Intn(len(children))]
	sc.curBoard = c.Board
	return msg(fmt.Sprintf("played %v\n%v", c.Move, sc.curBoard)), nil
}

type solveReport struct {
	Width   int          `yaml:"width"`
	Height  int          `yaml:"height"`
	Outcome string       `yaml:"outcome"`
	Move    string       `yaml:"move,omitempty"`
	Line    []string     `yaml:"line,omitempty"`
	Nodes   uint64       `yaml:"nodes"`
	TTable  solver.Stats `yaml:"ttable"`
}

// solve solves a fresh board and reports on it, without touching the
// current game.
func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	dims, err := intArgs(cmd.args,
		sc.config.GetInt(config.ConfigWidth), sc.config.GetInt(config.ConfigHeight))
	if err != nil {
		return nil, err
	}
	b, err := board.New(dims[0], dims[1])
	if err != nil {
		return nil, err
	}
	nodesBefore := sc.solver.Nodes()
	o, m := sc.solver.BestMove(b)
	nodes := sc.solver.Nodes() - nodesBefore
	report := solveReport{
		Width:   b.Width(),
		Height:  b.Height(),
		Outcome: o.String(),
		Line: lo.Map(sc.solver.Line(b), func(m move.Move, _ int) string {
			return m.ShortDescription()
		}),
		Nodes:  nodes,
		TTable: sc.solver.Stats(),
	}
	if m != nil {
		report.Move = m.ShortDescription()
	}
	out, err := yaml.Marshal(report)
	if err != nil {
		return nil, err
	}
	return msg(string(out)), nil
}

func (sc *ShellController) stats(cmd *shellcmd) (*Response, error) {
	out, err := yaml.Marshal(sc.solver.Stats())
	if err != nil {
		return nil, err
	}
	return msg(string(out)), nil
}

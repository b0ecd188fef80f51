package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/chomp/board"
	"github.com/domino14/chomp/config"
	"github.com/domino14/chomp/solver"
)

var (
	errNoData = errors.New("no data in line")
	errQuit   = errors.New("quit requested")
)

// lineReader is the part of a readline instance the game loop needs.
type lineReader interface {
	Readline() (string, error)
}

type ShellController struct {
	l      *readline.Instance
	config *config.Config
	out    io.Writer
	in     lineReader

	solver   *solver.Solver
	curBoard *board.Board
}

type shellcmd struct {
	cmd  string
	args []string
}

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mchomp>\033[0m ",
		HistoryFile:     "/tmp/chomp_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc := newController(cfg, l.Stdout(), l)
	sc.l = l
	return sc
}

func newController(cfg *config.Config, out io.Writer, in lineReader) *ShellController {
	sc := &ShellController{
		config: cfg,
		out:    out,
		in:     in,
		solver: solver.NewSolver(solver.WithThreads(cfg.GetInt(config.ConfigThreads))),
	}
	if err := sc.newBoard(cfg.GetInt(config.ConfigWidth), cfg.GetInt(config.ConfigHeight)); err != nil {
		log.Error().Err(err).Msg("could-not-create-default-board")
	}
	return sc
}

func (sc *ShellController) newBoard(width, height int) error {
	b, err := board.New(width, height)
	if err != nil {
		return err
	}
	sc.solver.TranspositionTable().Reset(
		sc.config.GetFloat64(config.ConfigTTableMemFraction), width, height)
	sc.curBoard = b
	return nil
}

func (sc *ShellController) showMessage(m string) {
	io.WriteString(sc.out, m)
	if !strings.HasSuffix(m, "\n") {
		io.WriteString(sc.out, "\n")
	}
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: strings.ToLower(fields[0])}
	if len(fields) > 1 {
		cmd.args = fields[1:]
	}
	return cmd, nil
}

func intArgs(args []string, defaults ...int) ([]int, error) {
	if len(args) > len(defaults) {
		return nil, fmt.Errorf("expected at most %d arguments, got %d", len(defaults), len(args))
	}
	out := make([]int, len(defaults))
	copy(out, defaults)
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", a)
		}
		out[i] = n
	}
	return out, nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		sig <- syscall.SIGINT
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "eval":
		return sc.eval(cmd)
	case "move", "m":
		return sc.move(cmd)
	case "moves":
		return sc.moves(cmd)
	case "line":
		return sc.line(cmd)
	case "random":
		return sc.random(cmd)
	case "solve":
		return sc.solve(cmd)
	case "stats":
		return sc.stats(cmd)
	case "play":
		return sc.play(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, fmt.Errorf("command %v not found", strconv.Quote(cmd.cmd))
	}
}

// Execute runs a single command line, as given on the command line.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(line, sig)
	if err != nil {
		if !errors.Is(err, errQuit) {
			sc.showError(err)
		}
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		resp, err := sc.standardModeSwitch(line, sig)
		if errors.Is(err, errQuit) {
			break
		}
		if errors.Is(err, errNoData) {
			continue
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) Cleanup() {
	log.Info().Interface("ttable-stats", sc.solver.Stats()).Msg("cleanup")
}

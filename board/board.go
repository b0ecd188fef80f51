package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/domino14/chomp/move"
)

// MaxDimension bounds each side of a board so that dimensions fit in a Key.
const MaxDimension = 255

var (
	ErrInvalidDimension = errors.New("invalid board dimension")
	ErrInvalidMove      = errors.New("invalid move")
)

// Key identifies a board configuration. Two boards have equal keys if and
// only if they have the same dimensions and the same pieces, so a Key can be
// used directly as a map key.
type Key struct {
	width  uint8
	height uint8
	bits   string
}

// A Board is a rectangle of chocolate. A Board is never modified after it is
// created; eating a piece creates a new Board.
type Board struct {
	width  int
	height int
	// row-major: the cell at (x, y) lives at y*width + x.
	cells []bool
	key   Key
}

// Child is a legal move along with the board it leads to.
type Child struct {
	Move  move.Move
	Board *Board
}

// New creates a full width x height board.
func New(width, height int) (*Board, error) {
	if width < 1 || height < 1 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	cells := make([]bool, width*height)
	for i := range cells {
		cells[i] = true
	}
	return newBoard(width, height, cells), nil
}

func newBoard(width, height int, cells []bool) *Board {
	b := &Board{width: width, height: height, cells: cells}
	b.key = b.computeKey()
	return b
}

func (b *Board) computeKey() Key {
	packed := make([]byte, (len(b.cells)+7)/8)
	for i, c := range b.cells {
		if c {
			packed[i/8] |= 1 << (i % 8)
		}
	}
	return Key{width: uint8(b.width), height: uint8(b.height), bits: string(packed)}
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

// At returns true if there is still a piece at (x, y). Coordinates outside the
// board have no piece.
func (b *Board) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return false
	}
	return b.cells[y*b.width+x]
}

// Pieces returns the number of pieces left, including the poisoned one.
func (b *Board) Pieces() int {
	n := 0
	for _, c := range b.cells {
		if c {
			n++
		}
	}
	return n
}

func (b *Board) Key() Key {
	return b.key
}

// Hash is a 64-bit hash of the board's Key. Equal boards have equal hashes.
func (b *Board) Hash() uint64 {
	buf := make([]byte, 2, 2+len(b.key.bits))
	buf[0], buf[1] = b.key.width, b.key.height
	buf = append(buf, b.key.bits...)
	return xxhash.Sum64(buf)
}

func (b *Board) Equals(other *Board) bool {
	return b.key == other.key
}

// TerminalState returns Loss if only the poisoned piece is left (the player
// to move has to eat it), and Undetermined otherwise.
func (b *Board) TerminalState() Outcome {
	// (0, 0) is index 0; everything after it is non-poisoned.
	for _, c := range b.cells[1:] {
		if c {
			return Undetermined
		}
	}
	return Loss
}

// Legal returns nil if m can be played on this board.
func (b *Board) Legal(m move.Move) error {
	if m.X < 0 || m.Y < 0 || m.X >= b.width || m.Y >= b.height {
		return fmt.Errorf("%w: %v is off a %dx%d board", ErrInvalidMove, m, b.width, b.height)
	}
	if m.IsPoisoned() {
		return fmt.Errorf("%w: %v is the poisoned piece", ErrInvalidMove, m)
	}
	if !b.At(m.X, m.Y) {
		return fmt.Errorf("%w: %v was already eaten", ErrInvalidMove, m)
	}
	return nil
}

// Apply returns a new board with the move played. The receiver is untouched.
func (b *Board) Apply(m move.Move) (*Board, error) {
	if err := b.Legal(m); err != nil {
		return nil, err
	}
	return b.chomp(m), nil
}

func (b *Board) chomp(m move.Move) *Board {
	cells := make([]bool, len(b.cells))
	copy(cells, b.cells)
	for y := m.Y; y < b.height; y++ {
		row := cells[y*b.width : (y+1)*b.width]
		for x := m.X; x < b.width; x++ {
			row[x] = false
		}
	}
	return newBoard(b.width, b.height, cells)
}

// LegalMoves returns every legal move with the board it produces. Moves are
// ordered by column, then by row within a column.
func (b *Board) LegalMoves() []Child {
	children := make([]Child, 0, b.Pieces()-1)
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			if (x == 0 && y == 0) || !b.cells[y*b.width+x] {
				continue
			}
			m := move.New(x, y)
			children = append(children, Child{Move: m, Board: b.chomp(m)})
		}
	}
	return children
}

// String draws the board with the first row at the top. X is the poisoned
// piece, # a piece, and . an eaten square.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < b.width; x++ {
		fmt.Fprintf(&sb, "%3d", x+1)
	}
	sb.WriteString("\n")
	for y := 0; y < b.height; y++ {
		fmt.Fprintf(&sb, "%3d", y+1)
		for x := 0; x < b.width; x++ {
			switch {
			case x == 0 && y == 0 && b.At(x, y):
				sb.WriteString("  X")
			case b.At(x, y):
				sb.WriteString("  #")
			default:
				sb.WriteString("  .")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

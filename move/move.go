package move

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadFormat = errors.New("moves look like x,y or x y, 1-indexed")

// Move is a chomp: the piece at (X, Y) and every piece at or beyond it in
// both directions gets eaten. Coordinates are 0-indexed; X is the horizontal
// axis (the column) and Y the vertical one (the row).
type Move struct {
	X int
	Y int
}

func New(x, y int) Move {
	return Move{X: x, Y: y}
}

// String returns the 1-indexed form that people type into the shell.
func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.X+1, m.Y+1)
}

// ShortDescription is the 1-indexed form without decoration, suitable for
// feeding back into FromString.
func (m Move) ShortDescription() string {
	return fmt.Sprintf("%d,%d", m.X+1, m.Y+1)
}

// IsPoisoned returns true if this move would eat the poisoned piece.
func (m Move) IsPoisoned() bool {
	return m.X == 0 && m.Y == 0
}

// FromString parses a 1-indexed move, horizontal coordinate first. The two
// numbers can be separated by a comma, spaces, or both.
func FromString(s string) (Move, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return Move{}, fmt.Errorf("%w: %q", ErrBadFormat, s)
	}
	var coords [2]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Move{}, fmt.Errorf("%w: %q is not a number", ErrBadFormat, f)
		}
		if n < 1 {
			return Move{}, fmt.Errorf("%w: %d is not a positive number", ErrBadFormat, n)
		}
		coords[i] = n - 1
	}
	return Move{X: coords[0], Y: coords[1]}, nil
}

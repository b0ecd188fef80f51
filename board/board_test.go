package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"

	"github.com/domino14/chomp/move"
)

func TestNewInvalidDimensions(t *testing.T) {
	is := is.New(t)
	for _, dims := range [][2]int{{0, 4}, {7, 0}, {0, 0}, {-1, 3}, {MaxDimension + 1, 1}} {
		b, err := New(dims[0], dims[1])
		is.True(errors.Is(err, ErrInvalidDimension))
		is.Equal(b, nil)
	}
}

func TestNewBoardTerminalState(t *testing.T) {
	is := is.New(t)
	for w := 1; w <= 6; w++ {
		for h := 1; h <= 6; h++ {
			b, err := New(w, h)
			is.NoErr(err)
			is.Equal(b.Pieces(), w*h)
			if w*h == 1 {
				is.Equal(b.TerminalState(), Loss)
			} else {
				is.Equal(b.TerminalState(), Undetermined)
			}
		}
	}
}

func TestApply(t *testing.T) {
	is := is.New(t)
	b, err := New(7, 4)
	is.NoErr(err)

	b2, err := b.Apply(move.New(3, 2))
	is.NoErr(err)
	// 4 columns x 2 rows were eaten.
	is.Equal(b2.Pieces(), 28-8)
	for x := 0; x < 7; x++ {
		for y := 0; y < 4; y++ {
			is.Equal(b2.At(x, y), x < 3 || y < 2)
		}
	}
	// source board is untouched.
	is.Equal(b.Pieces(), 28)
	is.True(!b.Equals(b2))
}

func TestApplyInvalidMove(t *testing.T) {
	is := is.New(t)
	b, err := New(3, 3)
	is.NoErr(err)
	b2, err := b.Apply(move.New(1, 1))
	is.NoErr(err)

	bad := []move.Move{
		move.New(0, 0),  // poisoned
		move.New(3, 0),  // off the board
		move.New(0, 3),  // off the board
		move.New(-1, 1), // off the board
		move.New(2, 2),  // already eaten
	}
	for _, m := range bad {
		nb, err := b2.Apply(m)
		is.True(errors.Is(err, ErrInvalidMove))
		is.Equal(nb, nil)
	}
	is.Equal(b2.Pieces(), 5)
}

func TestLegalMovesOrder(t *testing.T) {
	is := is.New(t)
	b, err := New(2, 2)
	is.NoErr(err)
	children := b.LegalMoves()
	is.Equal(len(children), 3)
	is.Equal(children[0].Move, move.New(0, 1))
	is.Equal(children[1].Move, move.New(1, 0))
	is.Equal(children[2].Move, move.New(1, 1))

	// enumerating again gives the same thing.
	again := b.LegalMoves()
	for i := range children {
		is.Equal(children[i].Move, again[i].Move)
		is.True(children[i].Board.Equals(again[i].Board))
	}
}

func TestTerminalBoardHasNoMoves(t *testing.T) {
	is := is.New(t)
	b, err := New(4, 3)
	is.NoErr(err)
	b, err = b.Apply(move.New(0, 1))
	is.NoErr(err)
	b, err = b.Apply(move.New(1, 0))
	is.NoErr(err)
	is.Equal(b.Pieces(), 1)
	is.Equal(b.TerminalState(), Loss)
	is.Equal(len(b.LegalMoves()), 0)
}

func TestRandomPlayoutsShrink(t *testing.T) {
	is := is.New(t)
	for i := 0; i < 200; i++ {
		w, h := frand.Intn(8)+1, frand.Intn(8)+1
		b, err := New(w, h)
		is.NoErr(err)
		for b.TerminalState() == Undetermined {
			children := b.LegalMoves()
			is.True(len(children) > 0)
			c := children[frand.Intn(len(children))]
			applied, err := b.Apply(c.Move)
			is.NoErr(err)
			is.True(applied.Equals(c.Board))
			is.True(applied.Pieces() < b.Pieces())
			// eating is monotonic.
			for x := 0; x < w; x++ {
				for y := 0; y < h; y++ {
					if !b.At(x, y) {
						is.True(!applied.At(x, y))
					}
				}
			}
			b = applied
		}
		is.Equal(b.Pieces(), 1)
		is.True(b.At(0, 0))
	}
}

func TestTranspositionsAreEqual(t *testing.T) {
	is := is.New(t)
	b, err := New(5, 5)
	is.NoErr(err)

	b1, err := b.Apply(move.New(3, 1))
	is.NoErr(err)
	b1, err = b1.Apply(move.New(1, 3))
	is.NoErr(err)

	b2, err := b.Apply(move.New(1, 3))
	is.NoErr(err)
	b2, err = b2.Apply(move.New(3, 1))
	is.NoErr(err)

	is.True(b1 != b2)
	is.True(b1.Equals(b2))
	is.Equal(b1.Key(), b2.Key())
	is.Equal(b1.Hash(), b2.Hash())

	b3, err := b1.Apply(move.New(4, 0))
	is.NoErr(err)
	is.True(b3.Key() != b1.Key())
	is.True(b3.Hash() != b1.Hash())
}

func TestKeyIncludesDimensions(t *testing.T) {
	is := is.New(t)
	// Same number of cells, all present, different shape.
	b1, err := New(2, 3)
	is.NoErr(err)
	b2, err := New(3, 2)
	is.NoErr(err)
	is.True(b1.Key() != b2.Key())
	is.True(!b1.Equals(b2))
}

func TestString(t *testing.T) {
	is := is.New(t)
	b, err := New(3, 2)
	is.NoErr(err)
	b, err = b.Apply(move.New(2, 1))
	is.NoErr(err)
	is.Equal(b.String(), ""+
		"     1  2  3\n"+
		"  1  X  #  #\n"+
		"  2  #  #  .\n")
}

func TestOutcome(t *testing.T) {
	is := is.New(t)
	is.Equal(Win.Negate(), Loss)
	is.Equal(Loss.Negate(), Win)
	is.Equal(Undetermined.Negate(), Undetermined)
	is.Equal(int(Win), 1)
	is.Equal(int(Loss), -1)
	is.Equal(Win.String(), "win")
}

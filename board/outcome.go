package board

// Outcome is the game-theoretic value of a position for the player about to
// move. The numeric values follow the negamax convention: a position is worth
// the negation of its best child.
type Outcome int8

const (
	Loss         Outcome = -1
	Undetermined Outcome = 0
	Win          Outcome = 1
)

func (o Outcome) Negate() Outcome {
	return -o
}

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	case Undetermined:
		return "undetermined"
	}
	return "invalid"
}

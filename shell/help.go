package shell

const usageText = `commands:
new [width] [height] - start a new board; sizes default to the config
show - show the current board
eval - solve the current board and recommend a move
move <x> <y> - eat the piece at column x, row y (1-indexed; "x,y" works too)
moves - list every legal move and whether it wins
line - show the best line of play from here
random - play a random legal move
play - play a game against the solver from the current board
solve [width] [height] - solve a fresh board and print a report
stats - transposition table counters
help [topic] - this text, or help on a topic
exit - quit
`

var helpTopics = map[string]string{
	"play": `play - the solver moves first from the current board, printing its
move 1-indexed. After each of its moves, type the opponent's move as two
1-indexed numbers, horizontal first, separated by a comma or a space.
Ctrl-C or Ctrl-D leaves the game. The game ends with "Game Over!" when a side
is left with only the poisoned piece.
`,
	"move": `move <x> <y> - chomp at column x, row y. Coordinates start at 1, and the
poisoned piece is at 1,1. Every piece at or to the right of column x and at or
below row y is eaten.
`,
	"solve": `solve [width] [height] - solve a full board of that size and print the
outcome, the winning move, the best line and search counters as YAML. The
current board is left alone.
`,
}

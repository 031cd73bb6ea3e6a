package model

import "fmt"

const BoardSize = 8

// Position is a single square on the board. Rank 0 is the top row as the
// board is drawn, which is also the first rank the FEN parser fills.
type Position struct {
	Rank int `json:"rank"`
	File int `json:"file"`
}

// NewPosition panics when either coordinate is off the board. Out of
// range coordinates are programmer errors, not user input; the transport
// layer bounds-checks anything that arrives over the wire.
func NewPosition(rank, file int) Position {
	if rank < 0 || rank >= BoardSize || file < 0 || file >= BoardSize {
		panic(fmt.Sprintf("invalid rank or file value: %d, %d", rank, file))
	}
	return Position{Rank: rank, File: file}
}

func inBounds(rank, file int) bool {
	return rank >= 0 && rank < BoardSize && file >= 0 && file < BoardSize
}

func (p Position) squareNotation() string {
	return fmt.Sprintf("%c%d", 'a'+p.File, BoardSize-p.Rank)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

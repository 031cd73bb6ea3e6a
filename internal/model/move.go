package model

import (
	"fmt"
	"strings"
)

// Move is a single ply, recorded by value. The capture and castle tags
// are derived from the board as it stands before the move is applied.
type Move struct {
	From       Position   `json:"from"`
	To         Position   `json:"to"`
	PieceType  PieceType  `json:"pieceType"`
	PieceColor PieceColor `json:"pieceColor"`
	IsCapture  bool       `json:"isCapture"`
	IsCastle   bool       `json:"isCastle"`
}

// NewMoveFromBoard builds the move record for from -> to. The source
// square must hold a piece; calling this for an empty square means the
// caller skipped validation, which is a contract breach, so it panics.
func NewMoveFromBoard(from, to Position, board *Board) Move {
	piece := board.PieceAt(from)
	if piece == nil {
		panic(fmt.Sprintf("no piece found at %d, %d", from.Rank, from.File))
	}
	fileDelta := to.File - from.File
	return Move{
		From:       from,
		To:         to,
		PieceType:  piece.Type,
		PieceColor: piece.Color,
		IsCapture:  board.PieceAt(to) != nil,
		IsCastle:   piece.Type == King && (fileDelta == 2 || fileDelta == -2),
	}
}

// Algebraic renders the move for display in a move list.
func (m Move) Algebraic() string {
	if m.IsCastle {
		if m.To.File > m.From.File {
			return "O-O"
		}
		return "O-O-O"
	}
	var sb strings.Builder
	sb.WriteString(m.PieceType.notation())
	if m.IsCapture {
		sb.WriteString("x")
	}
	sb.WriteString(m.To.squareNotation())
	return sb.String()
}

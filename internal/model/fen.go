package model

import (
	"fmt"
	"strconv"
	"strings"
)

// StartingFEN is the standard chess starting position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Fen holds the fields of a FEN record that the board needs. The
// placement and color strings are validated when a board is built from
// the record, so a bad symbol is reported where it is interpreted.
type Fen struct {
	PiecePlacement string `json:"piecePlacement"`
	ActiveColor    string `json:"activeColor"`
	CastlingRights string `json:"castlingRights"`
	MoveNumber     int    `json:"moveNumber"`
}

// ParseFEN splits a FEN record on whitespace into its six fields.
func ParseFEN(s string) (Fen, error) {
	fields := strings.Fields(s)
	if len(fields) < 6 {
		return Fen{}, fmt.Errorf("fen %q: expected 6 fields, got %d", s, len(fields))
	}
	moveNumber, err := strconv.Atoi(fields[5])
	if err != nil {
		return Fen{}, fmt.Errorf("fen move number %q: %w", fields[5], err)
	}
	return Fen{
		PiecePlacement: fields[0],
		ActiveColor:    fields[1],
		CastlingRights: fields[2],
		MoveNumber:     moveNumber,
	}, nil
}

// DefaultFEN is the record every new game starts from.
func DefaultFEN() Fen {
	fen, err := ParseFEN(StartingFEN)
	if err != nil {
		panic(err)
	}
	return fen
}

package model

import "strings"

// CastlingRights tracks which castle moves remain available for each
// color. Index 0 is kingside, index 1 is queenside. A revoked right is
// never reinstated for the rest of the game.
type CastlingRights struct {
	White [2]bool `json:"white"`
	Black [2]bool `json:"black"`
}

// CastlingRightsFromFEN reads the third FEN field ("KQkq", "Kq", "-"...).
func CastlingRightsFromFEN(field string) CastlingRights {
	return CastlingRights{
		White: [2]bool{strings.Contains(field, "K"), strings.Contains(field, "Q")},
		Black: [2]bool{strings.Contains(field, "k"), strings.Contains(field, "q")},
	}
}

// ValidCastleDirection reports whether color may still castle in the
// direction of the given file delta. Positive deltas point toward the h
// file (kingside).
func (cr *CastlingRights) ValidCastleDirection(color PieceColor, fileDelta int) bool {
	rights := cr.rights(color)
	switch sign(fileDelta) {
	case 1:
		return rights[0]
	case -1:
		return rights[1]
	}
	return false
}

// UpdateAfterMove revokes whatever rights the move just played
// invalidates: any king move clears both sides, a rook leaving its
// corner file clears that side.
func (cr *CastlingRights) UpdateAfterMove(m Move) {
	rights := cr.rights(m.PieceColor)
	switch m.PieceType {
	case King:
		rights[0], rights[1] = false, false
	case Rook:
		if m.From.File == 0 {
			rights[1] = false
		} else if m.From.File == BoardSize-1 {
			rights[0] = false
		}
	}
}

func (cr *CastlingRights) rights(color PieceColor) *[2]bool {
	if color == White {
		return &cr.White
	}
	return &cr.Black
}

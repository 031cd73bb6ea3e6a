package model

// PieceCreate is reported once per piece placed while a board is being
// populated from a FEN record.
type PieceCreate struct {
	Position Position   `json:"position"`
	Type     PieceType  `json:"type"`
	Color    PieceColor `json:"color"`
}

// PieceMove is reported once per physical relocation, so a castle
// produces two: the king's and the rook's.
type PieceMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// MoveResult is what a completed turn hands back to the caller. The
// presentation layer drives everything off it; an illegal move produces
// no result at all.
type MoveResult struct {
	Move          Move          `json:"move"`
	Moves         []PieceMove   `json:"moves"`
	Notation      string        `json:"notation"`
	IsCheck       bool          `json:"isCheck"`
	GameEndStatus GameEndStatus `json:"gameEndStatus"`
	Winner        PieceColor    `json:"winner"`
}

package model

type PieceColor string

const (
	White PieceColor = "white"
	Black PieceColor = "black"
	// NoColor marks the active color once the game has ended.
	NoColor PieceColor = ""
)

func (c PieceColor) Opposite() PieceColor {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (t PieceType) notation() string {
	switch t {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Piece is one man on the board. All six kinds share the struct; the
// movement methods switch on Type rather than hiding each kind behind an
// interface, which keeps the grid a flat array of values.
type Piece struct {
	Type             PieceType  `json:"type"`
	Color            PieceColor `json:"color"`
	Position         Position   `json:"position"`
	StartingPosition Position   `json:"startingPosition"`
	Moved            bool       `json:"moved"`
}

func NewPiece(pieceType PieceType, color PieceColor, position Position) *Piece {
	return &Piece{
		Type:             pieceType,
		Color:            color,
		Position:         position,
		StartingPosition: position,
		Moved:            false,
	}
}

// SetPosition relocates the piece. The moved flag latches: once set it is
// never cleared again.
func (p *Piece) SetPosition(to Position, moved bool) {
	p.Position = to
	if moved {
		p.Moved = true
	}
}

// IsSliding reports whether the piece's moves can be blocked by a piece
// in the way. The king counts because castling needs the same
// empty-squares walk, and the pawn joins the same code path even though
// its single steps have no intermediate squares.
func (p *Piece) IsSliding() bool {
	return p.Type != Knight
}

// Moves enumerates every pseudo-legal destination from the piece's
// geometry, ignoring occupancy and check. Destinations come out in board
// scan order (rank-major, then file); GetValidMoves relies on that order
// staying stable.
func (p *Piece) Moves(includeCaptures bool) []Position {
	switch p.Type {
	case Pawn:
		return p.pawnMoves(includeCaptures)
	case King:
		return p.kingMoves()
	}
	var moves []Position
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			rankDiff := rank - p.Position.Rank
			fileDiff := file - p.Position.File
			if rankDiff == 0 && fileDiff == 0 {
				continue
			}
			match := false
			switch p.Type {
			case Knight:
				match = (abs(rankDiff) == 1 && abs(fileDiff) == 2) ||
					(abs(rankDiff) == 2 && abs(fileDiff) == 1)
			case Bishop:
				match = rankDiff == fileDiff || rankDiff == -fileDiff
			case Rook:
				match = rankDiff == 0 || fileDiff == 0
			case Queen:
				match = rankDiff == fileDiff || rankDiff == -fileDiff ||
					rankDiff == 0 || fileDiff == 0
			}
			if match {
				moves = append(moves, NewPosition(rank, file))
			}
		}
	}
	return moves
}

func (p *Piece) pawnMoves(includeCaptures bool) []Position {
	var moves []Position
	dir := p.moveDirection()
	if p.Position.Rank != 0 && p.Position.Rank != BoardSize-1 {
		// Forward one square
		moves = append(moves, NewPosition(p.Position.Rank+dir, p.Position.File))
		if includeCaptures {
			if p.Position.File != BoardSize-1 {
				moves = append(moves, NewPosition(p.Position.Rank+dir, p.Position.File+1))
			}
			if p.Position.File != 0 {
				moves = append(moves, NewPosition(p.Position.Rank+dir, p.Position.File-1))
			}
		}
	}
	if !p.Moved && p.Position.Rank == p.homeRank() {
		// Forward two squares
		moves = append(moves, NewPosition(p.Position.Rank+2*dir, p.Position.File))
	}
	return moves
}

func (p *Piece) kingMoves() []Position {
	var moves []Position
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			rankDiff := abs(rank - p.Position.Rank)
			fileDiff := abs(file - p.Position.File)
			if rankDiff <= 1 && fileDiff <= 1 && rankDiff+fileDiff > 0 {
				moves = append(moves, NewPosition(rank, file))
			}
		}
	}
	// The king may also castle two squares to either side. Whether a
	// castle is actually available is the board's call, not the piece's.
	if !p.Moved {
		if p.Position.File < BoardSize-2 {
			moves = append(moves, NewPosition(p.Position.Rank, p.Position.File+2))
		}
		if p.Position.File > 2 {
			moves = append(moves, NewPosition(p.Position.Rank, p.Position.File-2))
		}
	}
	return moves
}

// White pawns move toward rank 0, black pawns toward rank 7.
func (p *Piece) moveDirection() int {
	if p.Color == White {
		return -1
	}
	return 1
}

func (p *Piece) homeRank() int {
	if p.Color == White {
		return BoardSize - 2
	}
	return 1
}

// ValidMove reports whether to is in the piece's non-capturing move set.
func (p *Piece) ValidMove(to Position) bool {
	for _, candidate := range p.Moves(false) {
		if candidate == to {
			return true
		}
	}
	return false
}

// ValidCapture reports whether the piece could capture on to. Pawns
// capture diagonally forward only, which their plain move set excludes,
// so they get an explicit rule; every other piece captures wherever it
// moves.
func (p *Piece) ValidCapture(to Position) bool {
	if p.Type != Pawn {
		return p.ValidMove(to)
	}
	captureRank := p.Position.Rank + p.moveDirection()
	if captureRank < 0 || captureRank >= BoardSize || to.Rank != captureRank {
		return false
	}
	return (p.Position.File > 0 && to.File == p.Position.File-1) ||
		(p.Position.File < BoardSize-1 && to.File == p.Position.File+1)
}

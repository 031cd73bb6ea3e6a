package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// GameEndStatus says how a game finished. Checkmate and stalemate are
// derived here; the rest are injected by the session layer (resign
// button, clock).
type GameEndStatus string

const (
	NoStatus     GameEndStatus = ""
	Checkmate    GameEndStatus = "checkmate"
	Resignation  GameEndStatus = "resignation"
	Stalemate    GameEndStatus = "stalemate"
	DeadPosition GameEndStatus = "deadposition"
	FlagFall     GameEndStatus = "flagfall"
)

var ErrInvalidMove = errors.New("invalid move")

// Board owns the position and all legality logic. All mutation goes
// through MakeMove (or MovePiece for callers that have already
// validated); queries never change state.
type Board struct {
	grid           [BoardSize][BoardSize]*Piece
	activeColor    PieceColor
	pastMoves      []Move
	moveNumber     int
	castlingRights CastlingRights
	winner         PieceColor
	gameEndStatus  GameEndStatus
}

// NewEmptyBoard is a board with no pieces and no active color, the state
// a FEN record is loaded into.
func NewEmptyBoard() *Board {
	return &Board{
		activeColor: NoColor,
		moveNumber:  1,
	}
}

// NewBoardFromFEN populates a board from a FEN record and reports one
// PieceCreate per piece placed so the caller can mirror the population.
// Unrecognised placement symbols, oversized placements, and unknown
// active color letters are reported by name. A FEN arrives as user
// input via reset requests, so nothing here panics.
func NewBoardFromFEN(fen Fen) (*Board, []PieceCreate, error) {
	board := NewEmptyBoard()
	var created []PieceCreate
	ranks := strings.Split(fen.PiecePlacement, "/")
	if len(ranks) > BoardSize {
		return nil, nil, fmt.Errorf("too many ranks in FEN: %d", len(ranks))
	}
	for rank, rankStr := range ranks {
		file := 0
		for _, symbol := range rankStr {
			if symbol >= '1' && symbol <= '8' {
				file += int(symbol - '0')
				continue
			}
			if file >= BoardSize {
				return nil, nil, fmt.Errorf("too many squares in FEN rank: %s", rankStr)
			}
			color := Black
			if unicode.IsUpper(symbol) {
				color = White
			}
			var pieceType PieceType
			switch unicode.ToUpper(symbol) {
			case 'P':
				pieceType = Pawn
			case 'N':
				pieceType = Knight
			case 'B':
				pieceType = Bishop
			case 'R':
				pieceType = Rook
			case 'Q':
				pieceType = Queen
			case 'K':
				pieceType = King
			default:
				return nil, nil, fmt.Errorf("unrecognised symbol in FEN: %c", symbol)
			}
			created = append(created, board.addPiece(color, pieceType, NewPosition(rank, file)))
			file++
		}
		if file > BoardSize {
			return nil, nil, fmt.Errorf("too many squares in FEN rank: %s", rankStr)
		}
	}
	switch fen.ActiveColor {
	case "w":
		board.activeColor = White
	case "b":
		board.activeColor = Black
	default:
		return nil, nil, fmt.Errorf("unrecognised active color in FEN: %s", fen.ActiveColor)
	}
	board.moveNumber = fen.MoveNumber
	board.castlingRights = CastlingRightsFromFEN(fen.CastlingRights)
	return board, created, nil
}

func (b *Board) addPiece(color PieceColor, pieceType PieceType, position Position) PieceCreate {
	b.grid[position.Rank][position.File] = NewPiece(pieceType, color, position)
	return PieceCreate{Position: position, Type: pieceType, Color: color}
}

func (b *Board) PieceAt(position Position) *Piece {
	return b.grid[position.Rank][position.File]
}

func (b *Board) ActiveColor() PieceColor {
	return b.activeColor
}

func (b *Board) PastMoves() []Move {
	return b.pastMoves
}

func (b *Board) MoveNumber() int {
	return b.moveNumber
}

func (b *Board) CastlingRights() CastlingRights {
	return b.castlingRights
}

func (b *Board) Winner() PieceColor {
	return b.winner
}

func (b *Board) GameEndStatus() GameEndStatus {
	return b.gameEndStatus
}

// ValidMove decides the legality of a single move for activeColor. The
// clauses run in a fixed order so the cheap rejections come first and
// the ray walk only ever sees geometrically sane moves.
//
// checkForCheck guards the clauses that themselves enumerate moves: the
// in-check scan runs with it disabled so the two cannot recurse into
// each other forever.
func (b *Board) ValidMove(m Move, activeColor PieceColor, checkForCheck bool) bool {
	// A move tagged as both capture and castle is malformed.
	if m.IsCastle && m.IsCapture {
		return false
	}
	piece := b.PieceAt(m.From)
	if piece == nil {
		return false
	}
	// A finished game has no active color, which rejects everything.
	if activeColor == NoColor || piece.Color != activeColor {
		return false
	}
	// Destination occupancy: a friendly piece blocks, an enemy piece
	// requires a valid capture, an empty square requires a plain move.
	if target := b.PieceAt(m.To); target != nil {
		if target.Color == piece.Color {
			return false
		}
		if !piece.ValidCapture(m.To) {
			return false
		}
	} else if !piece.ValidMove(m.To) {
		return false
	}
	// Sliding pieces cannot jump.
	if piece.IsSliding() && !b.noPieceBetweenSquares(m.From, m.To) {
		return false
	}
	// The move must not leave the mover's own king in check.
	if checkForCheck {
		probe := b.Clone()
		probe.MovePiece(m.From, m.To)
		if probe.InCheck(activeColor) {
			return false
		}
	}
	if checkForCheck && m.IsCastle {
		fileDelta := m.To.File - m.From.File
		// Castling this way must still be permitted.
		if !b.castlingRights.ValidCastleDirection(activeColor, fileDelta) {
			return false
		}
		// Every square between the king and the rook must be empty.
		rookSquare := NewPosition(m.From.Rank, castleRookFile(fileDelta))
		if !b.noPieceBetweenSquares(m.From, rookSquare) {
			return false
		}
		// The king may not castle out of check...
		if b.InCheck(activeColor) {
			return false
		}
		// ...nor into it.
		probe := b.Clone()
		probe.MovePiece(m.From, m.To)
		if probe.InCheck(activeColor) {
			return false
		}
	}
	return true
}

// castleRookFile is the corner the rook starts in for a castle in the
// direction of fileDelta.
func castleRookFile(fileDelta int) int {
	if fileDelta > 0 {
		return BoardSize - 1
	}
	return 0
}

// GetValidMoves collects every legal move for activeColor in board scan
// order: rank-major, then file, then each piece's own enumeration order.
// Callers rely on the ordering being deterministic.
func (b *Board) GetValidMoves(activeColor PieceColor, checkForCheck bool) []Move {
	var moves []Move
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			piece := b.grid[rank][file]
			if piece == nil {
				continue
			}
			for _, to := range piece.Moves(true) {
				m := NewMoveFromBoard(NewPosition(rank, file), to, b)
				if b.ValidMove(m, activeColor, checkForCheck) {
					moves = append(moves, m)
				}
			}
		}
	}
	return moves
}

// InCheck reports whether color's king is attacked. The opponent scan
// runs with checkForCheck disabled; see ValidMove.
func (b *Board) InCheck(color PieceColor) bool {
	kingSquare, ok := b.findKing(color)
	if !ok {
		return false
	}
	for _, m := range b.GetValidMoves(color.Opposite(), false) {
		if m.To == kingSquare {
			return true
		}
	}
	return false
}

func (b *Board) findKing(color PieceColor) (Position, bool) {
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			piece := b.grid[rank][file]
			if piece != nil && piece.Type == King && piece.Color == color {
				return NewPosition(rank, file), true
			}
		}
	}
	return Position{}, false
}

// noPieceBetweenSquares walks the straight or diagonal ray strictly
// between start and end and reports whether every intermediate square is
// empty. Adjacent squares trivially pass.
func (b *Board) noPieceBetweenSquares(start, end Position) bool {
	rankStep := sign(end.Rank - start.Rank)
	fileStep := sign(end.File - start.File)
	rank := start.Rank + rankStep
	file := start.File + fileStep
	for rank != end.Rank || file != end.File {
		if b.grid[rank][file] != nil {
			return false
		}
		rank += rankStep
		file += fileStep
	}
	return true
}

// MovePiece relocates a piece with no legality checking, overwriting
// whatever occupied the destination. Callers must have validated the
// move; an empty source square is a contract breach and panics.
func (b *Board) MovePiece(from, to Position) {
	piece := b.grid[from.Rank][from.File]
	if piece == nil {
		panic(fmt.Sprintf("no piece at start location: %d, %d", from.Rank, from.File))
	}
	piece.SetPosition(to, true)
	b.grid[to.Rank][to.File] = piece
	b.grid[from.Rank][from.File] = nil
}

// Clone deep-copies the board so hypothetical moves can be probed
// without touching the real position.
func (b *Board) Clone() *Board {
	clone := *b
	for rank := range b.grid {
		for file, piece := range b.grid[rank] {
			if piece != nil {
				copied := *piece
				clone.grid[rank][file] = &copied
			}
		}
	}
	clone.pastMoves = append([]Move(nil), b.pastMoves...)
	return &clone
}

// MakeMove runs a whole turn: validation, the piece relocation (plus the
// rook's half of a castle), the color flip, the move record, the move
// counter, the castling rights update and the end-of-game evaluation.
// The order is fixed: the rights update must see the move just played,
// and the counter must see the flipped color. An illegal move returns
// ErrInvalidMove and leaves the board untouched.
func (b *Board) MakeMove(m Move) (*MoveResult, error) {
	if !b.ValidMove(m, b.activeColor, true) {
		return nil, ErrInvalidMove
	}
	result := &MoveResult{Move: m, Notation: m.Algebraic()}

	b.MovePiece(m.From, m.To)
	result.Moves = append(result.Moves, PieceMove{From: m.From, To: m.To})

	// A castle also relocates the rook to the square the king crossed.
	if m.IsCastle {
		fileDelta := m.To.File - m.From.File
		rookFrom := NewPosition(m.From.Rank, castleRookFile(fileDelta))
		rookTo := NewPosition(m.To.Rank, m.To.File-sign(fileDelta))
		b.MovePiece(rookFrom, rookTo)
		result.Moves = append(result.Moves, PieceMove{From: rookFrom, To: rookTo})
	}

	b.activeColor = b.activeColor.Opposite()
	b.pastMoves = append(b.pastMoves, m)
	if b.activeColor == White {
		b.moveNumber++
	}
	b.castlingRights.UpdateAfterMove(m)

	result.IsCheck = b.InCheck(b.activeColor)
	b.evaluateGameEnd()
	result.GameEndStatus = b.gameEndStatus
	result.Winner = b.winner
	return result, nil
}

// evaluateGameEnd ends the game when the side to move has no legal
// moves: checkmate if its king is attacked, stalemate otherwise.
// Clearing the active color blocks every later move attempt.
func (b *Board) evaluateGameEnd() {
	if b.activeColor == NoColor {
		return
	}
	if len(b.GetValidMoves(b.activeColor, true)) > 0 {
		return
	}
	if b.InCheck(b.activeColor) {
		b.gameEndStatus = Checkmate
		b.winner = b.activeColor.Opposite()
	} else {
		b.gameEndStatus = Stalemate
	}
	b.activeColor = NoColor
}

// SetGameEnd records a terminal status the core cannot derive itself,
// such as a resignation or a flag fall. The first status to land wins.
func (b *Board) SetGameEnd(status GameEndStatus, winner PieceColor) {
	if b.gameEndStatus != NoStatus {
		return
	}
	b.gameEndStatus = status
	b.winner = winner
	b.activeColor = NoColor
}

type boardJSON struct {
	Grid           [BoardSize][BoardSize]*Piece `json:"grid"`
	ActiveColor    PieceColor                   `json:"activeColor"`
	MoveNumber     int                          `json:"moveNumber"`
	CastlingRights CastlingRights               `json:"castlingRights"`
	Winner         PieceColor                   `json:"winner"`
	GameEndStatus  GameEndStatus                `json:"gameEndStatus"`
}

// MarshalJSON serializes the board for the state broadcast.
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{
		Grid:           b.grid,
		ActiveColor:    b.activeColor,
		MoveNumber:     b.moveNumber,
		CastlingRights: b.castlingRights,
		Winner:         b.winner,
		GameEndStatus:  b.gameEndStatus,
	})
}

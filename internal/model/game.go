package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/gridchess/gridchess-backend/internal/ws"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// WSMove is the wire shape of a move request: two squares read from user
// input. Everything else about the move is derived from the board.
type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// WSReset is the wire shape of a reset request.
type WSReset struct {
	Fen string `json:"fen"`
}

type ClientPlayer struct {
	ID       string     `json:"name"`
	Color    PieceColor `json:"color"`
	TimeLeft int        `json:"timeLeft"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// GameState is the snapshot broadcast to every connection after a move.
type GameState struct {
	Board         *Board        `json:"board"`
	ToMove        PieceColor    `json:"toMove"`
	MoveLog       []string      `json:"moveLog"`
	IsCheck       bool          `json:"isCheck"`
	LastMove      *PieceMove    `json:"lastMove"`
	GameEndStatus GameEndStatus `json:"gameEndStatus"`
	Winner        PieceColor    `json:"winner"`
	Players       Players       `json:"players"`
}

// Game owns a single board and its observers. Every call into the board
// is serialized under the game mutex; the core itself assumes callers
// never overlap.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *Board
	moveLog     []string
	lastMove    *PieceMove
	isCheck     bool
	players     Players
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
}

func NewGame(id string) *Game {
	board, _, err := NewBoardFromFEN(DefaultFEN())
	if err != nil {
		panic(err)
	}
	return &Game{
		ID:          id,
		board:       board,
		moveLog:     make([]string, 0),
		connections: NewGameConnections(),
		whiteClock:  NewClock(600 * time.Second),
		blackClock:  NewClock(600 * time.Second),
	}
}

func (g *Game) AddPlayer(playerID string) (PieceColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Color: White, TimeLeft: 6000}
		return White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Color: Black, TimeLeft: 6000}
		return Black, nil
	}
	return NoColor, errors.New("game is full")
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

// state builds a snapshot that is safe to hold and marshal after the
// game mutex is released: the board is cloned and the move log copied,
// so later moves and resets cannot mutate what a caller is serializing.
func (g *Game) state() GameState {
	return GameState{
		Board:         g.board.Clone(),
		ToMove:        g.board.ActiveColor(),
		MoveLog:       append([]string(nil), g.moveLog...),
		IsCheck:       g.isCheck,
		LastMove:      g.lastMove,
		GameEndStatus: g.board.GameEndStatus(),
		Winner:        g.board.Winner(),
		Players:       g.players,
	}
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	if g.players.White.ID != "" && g.players.White.ID == playerID {
		return true
	}
	if g.players.Black.ID != "" && g.players.Black.ID == playerID {
		return true
	}
	return false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

func (g *Game) playerColor(playerID string) PieceColor {
	if g.players.White.ID == playerID {
		return White
	}
	if g.players.Black.ID == playerID {
		return Black
	}
	return NoColor
}

// MakeMove validates and applies one move on behalf of playerID. An
// illegal move is a plain no-op for the board; the caller just gets the
// error back and no state is broadcast.
func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !inBounds(move.From.Rank, move.From.File) || !inBounds(move.To.Rank, move.To.File) {
		return errors.New("invalid move, out of bounds")
	}
	if g.board.PieceAt(move.From) == nil {
		return errors.New("no piece at from square")
	}
	mover := g.playerColor(playerID)
	if mover == NoColor {
		return errors.New("player not in game")
	}
	if mover != g.board.ActiveColor() {
		return errors.New("not your turn")
	}

	// A flag that already fell settles the game before the move counts.
	if g.moverClock(mover).Expired() {
		g.board.SetGameEnd(FlagFall, mover.Opposite())
		go g.broadcastState()
		return errors.New("flag fell")
	}

	result, err := g.board.MakeMove(NewMoveFromBoard(move.From, move.To, g.board))
	if err != nil {
		return err
	}

	g.moverClock(mover).Stop()
	if g.board.ActiveColor() != NoColor {
		g.moverClock(g.board.ActiveColor()).Start()
	}
	g.players.White.TimeLeft = int(g.whiteClock.TimeLeft().Milliseconds() / 100)
	g.players.Black.TimeLeft = int(g.blackClock.TimeLeft().Milliseconds() / 100)

	g.moveLog = append(g.moveLog, result.Notation)
	g.lastMove = &result.Moves[0]
	g.isCheck = result.IsCheck

	go g.broadcastState()
	return nil
}

// Resign ends the game in the opponent's favor. The board cannot derive
// this itself, so it is injected.
func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color := g.playerColor(playerID)
	if color == NoColor {
		return errors.New("player not in game")
	}
	g.board.SetGameEnd(Resignation, color.Opposite())
	g.whiteClock.Stop()
	g.blackClock.Stop()

	go g.broadcastState()
	return nil
}

// Reset replaces the board with one seeded from the given FEN record and
// clears the per-game bookkeeping.
func (g *Game) Reset(fen Fen) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	board, _, err := NewBoardFromFEN(fen)
	if err != nil {
		return fmt.Errorf("reset board: %w", err)
	}
	g.board = board
	g.moveLog = make([]string, 0)
	g.lastMove = nil
	g.isCheck = false
	g.whiteClock = NewClock(600 * time.Second)
	g.blackClock = NewClock(600 * time.Second)

	go g.broadcastState()
	return nil
}

func (g *Game) moverClock(color PieceColor) *Clock {
	if color == White {
		return g.whiteClock
	}
	return g.blackClock
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and reject the new one.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	// Send the current state to the newcomer.
	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	g.mu.Lock()
	state := g.state()
	payload, err := json.Marshal(state)
	g.mu.Unlock()
	if err != nil {
		log.Printf("marshal game state: %v", err)
		return
	}

	g.connections.mu.RLock()
	activeConnections := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("send state to player %s: %v", playerID, err)
			g.connections.mu.Lock()
			delete(g.connections.connections, playerID)
			g.connections.mu.Unlock()
		}
	}
}

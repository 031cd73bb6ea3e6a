package service

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/gridchess/gridchess-backend/internal/model"
)

var ErrGameNotFound = errors.New("game not found")

// GameManager owns every live game plus the matchmaking queue. Matched
// players pick their assignment up by polling.
type GameManager struct {
	games   map[string]*model.Game
	queue   *model.Queue
	matches map[string]model.MatchFoundEvent // playerID -> assignment
	mu      sync.RWMutex
}

func NewGameManager() *GameManager {
	gm := &GameManager{
		games:   make(map[string]*model.Game),
		queue:   model.NewQueue(),
		matches: make(map[string]model.MatchFoundEvent),
	}

	// Start matchmaking processor
	go gm.processMatchmaking()

	return gm
}

func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		gm.matchWaiting()
	}
}

// matchWaiting pairs queued players into fresh games, oldest two first.
func (gm *GameManager) matchWaiting() {
	for {
		player1, player2, ok := gm.queue.NextPair()
		if !ok {
			return
		}

		gameID := uuid.New().String()
		game := model.NewGame(gameID)

		p1Color, err := game.AddPlayer(player1.ID)
		if err != nil {
			log.Printf("add player %s to game %s: %v", player1.ID, gameID, err)
			continue
		}
		p2Color, err := game.AddPlayer(player2.ID)
		if err != nil {
			log.Printf("add player %s to game %s: %v", player2.ID, gameID, err)
			continue
		}

		gm.mu.Lock()
		gm.games[gameID] = game
		gm.matches[player1.ID] = model.MatchFoundEvent{GameID: gameID, Color: p1Color}
		gm.matches[player2.ID] = model.MatchFoundEvent{GameID: gameID, Color: p2Color}
		gm.mu.Unlock()
	}
}

func (gm *GameManager) CreateGame() (string, error) {
	gameID := uuid.New().String()

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return "", errors.New("game already exists")
	}
	gm.games[gameID] = model.NewGame(gameID)
	return gameID, nil
}

func (gm *GameManager) getGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PieceColor, error) {
	game, err := gm.getGame(gameID)
	if err != nil {
		return model.NoColor, err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

// PollMatchmaking hands a matched player their assignment exactly once.
func (gm *GameManager) PollMatchmaking(playerID string) (model.MatchFoundEvent, bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	event, ok := gm.matches[playerID]
	if ok {
		delete(gm.matches, playerID)
	}
	return event, ok
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.getGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.getGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) Resign(gameID string, playerID string) error {
	game, err := gm.getGame(gameID)
	if err != nil {
		return err
	}
	return game.Resign(playerID)
}

func (gm *GameManager) ResetGame(gameID string, fenString string) error {
	game, err := gm.getGame(gameID)
	if err != nil {
		return err
	}
	fen, err := model.ParseFEN(fenString)
	if err != nil {
		return fmt.Errorf("reset game %s: %w", gameID, err)
	}
	return game.Reset(fen)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.getGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.getGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}

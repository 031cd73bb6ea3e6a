package model

// Player is a participant known to the matchmaking layer before they are
// seated at a game.
type Player struct {
	ID    string
	Color PieceColor
}

// MatchFoundEvent tells a queued player which game they were paired
// into.
type MatchFoundEvent struct {
	GameID string     `json:"gameId"`
	Color  PieceColor `json:"color"`
}

package domain

import "time"

// GameType identifies one of the built-in mini-games.
type GameType string

const (
	GameClicker GameType = "Clicker"
	GameMemory  GameType = "Memory"
)

func (g GameType) Valid() bool {
	return g == GameClicker || g == GameMemory
}

// GameSession is an append-only record of a finished mini-game. There is no
// lifecycle beyond creation.
type GameSession struct {
	ID        string
	UserID    string
	GameType  GameType
	Score     int
	CreatedAt time.Time
}

// GameAwardPoints is the fixed award per completed game session.
const GameAwardPoints = 10

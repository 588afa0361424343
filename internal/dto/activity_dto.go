package dto

import "time"

// MetricsRequest carries raw measurement strings; anything empty or
// non-numeric is dropped server-side.
type MetricsRequest struct {
	Fields map[string]string `json:"fields"`
}

type MetricsResponse struct {
	Values      map[string]float64 `json:"values"`
	PointsAdded int                `json:"pointsAdded"`
	TotalPoints int                `json:"totalPoints"`
}

type SubmittedTodayResponse struct {
	Submitted bool `json:"submitted"`
}

type GameSessionRequest struct {
	GameType string `json:"gameType"`
	Score    int    `json:"score"`
}

type GameSessionResponse struct {
	SessionID   string `json:"sessionId"`
	PointsAdded int    `json:"pointsAdded"`
	TotalPoints int    `json:"totalPoints"`
}

type GameHistoryEntry struct {
	SessionID string    `json:"sessionId"`
	GameType  string    `json:"gameType"`
	Score     int       `json:"score"`
	PlayedAt  time.Time `json:"playedAt"`
}

type GoalResponse struct {
	ID          string `json:"id"`
	Goal        string `json:"goal"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	IsCompleted bool   `json:"isCompleted"`
}

type GoalStatusUpdate struct {
	ID          string `json:"id"`
	IsCompleted bool   `json:"isCompleted"`
}

type SaveGoalsRequest struct {
	Goals []GoalStatusUpdate `json:"goals"`
}

type SaveGoalsResponse struct {
	PointsAwarded int    `json:"pointsAwarded"`
	TotalPoints   int    `json:"totalPoints,omitempty"`
	Status        string `json:"status"` // "awarded" or "saved"
}

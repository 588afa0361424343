package domain

import "context"

// GoalSource produces daily goal candidates for a user. Implementations are
// external collaborators (webhook, LLM); a source that yields zero usable
// candidates from a non-empty response must return an error.
type GoalSource interface {
	FetchGoals(ctx context.Context, userID string) ([]GoalCandidate, error)
}

// CodeSender obtains the one-time passcode that must be delivered to the
// user's email before a session is considered authenticated.
type CodeSender interface {
	SendCode(ctx context.Context, email string) (string, error)
}

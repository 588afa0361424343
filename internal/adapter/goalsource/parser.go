// Package goalsource holds the collaborators that produce daily goals: the
// plaintext webhook and an Ollama-backed generator. Both emit
// "goalText;category;difficulty" lines consumed by the shared parser.
package goalsource

import (
	"strings"

	"vitalink/internal/domain"

	"go.uber.org/zap"
)

// ParseGoalLines parses newline-separated "goalText;category;difficulty"
// records. A line with other than exactly two semicolons, or with a category
// or difficulty outside the fixed enumerations, is dropped individually with
// a warning; it never fails the batch.
func ParseGoalLines(raw string, logger *zap.Logger) []domain.GoalCandidate {
	var candidates []domain.GoalCandidate
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, ";")
		if len(parts) != 3 {
			logger.Warn("Dropping malformed goal line", zap.String("line", line))
			continue
		}
		goal := strings.TrimSpace(parts[0])
		category, okCat := domain.ParseCategory(strings.TrimSpace(parts[1]))
		difficulty, okDiff := domain.ParseDifficulty(strings.TrimSpace(parts[2]))
		if goal == "" || !okCat || !okDiff {
			logger.Warn("Dropping goal line with unknown category or difficulty",
				zap.String("line", line))
			continue
		}
		candidates = append(candidates, domain.GoalCandidate{
			Goal:       goal,
			Category:   category,
			Difficulty: difficulty,
		})
	}
	return candidates
}

package goalsource

import (
	"context"
	"fmt"
	"strings"

	"vitalink/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// OllamaGoalSource generates daily goals with a local LLM instead of the
// webhook. It asks the model for the same semicolon-separated line format,
// so the shared parser applies unchanged.
type OllamaGoalSource struct {
	llm    *ollama.LLM
	logger *zap.Logger
}

func NewOllamaGoalSource(llm *ollama.LLM, logger *zap.Logger) *OllamaGoalSource {
	return &OllamaGoalSource{llm: llm, logger: logger}
}

func (s *OllamaGoalSource) FetchGoals(ctx context.Context, userID string) ([]domain.GoalCandidate, error) {
	prompt := `You are a health coach. Produce exactly 5 short daily wellness goals.
Respond with ONLY plain text, one goal per line, each line in the format:
goalText;category;difficulty

Rules:
1. category must be one of: Diet, Exercise, Mental Health, General
2. difficulty must be one of: Easy, Medium, Hard
3. goalText is a single short imperative sentence with no semicolons
4. No numbering, no extra commentary`

	completion, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt)
	if err != nil {
		return nil, fmt.Errorf("ollama goal generation failed: %w", err)
	}

	raw := strings.TrimSpace(completion)
	s.logger.Debug("Ollama goal response", zap.String("raw", raw))

	candidates := ParseGoalLines(raw, s.logger)
	if len(candidates) == 0 && raw != "" {
		return nil, fmt.Errorf("ollama response contained no usable goal lines")
	}
	return candidates, nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"vitalink/internal/domain"
	"vitalink/internal/logger"
	"vitalink/internal/repository"
	"vitalink/internal/util"

	"go.uber.org/zap"
)

const (
	// Generation is gated by local calendar date, deliberately unlike the
	// metrics gate's UTC window.
	lastGenDateLayout = "2006-01-02"

	lastGenTTL  = 48 * time.Hour
	snapshotTTL = 24 * time.Hour
)

// GoalService is the recommendation reconciler: it fetches AI-suggested
// goals at most once per local calendar day, replaces the stored batch
// wholesale, and on save scores the goals that flipped from incomplete to
// complete against the difficulty tariff.
type GoalService interface {
	CanGenerateToday(ctx context.Context, userID string) (bool, error)
	Generate(ctx context.Context, userID string) (domain.WorkingSet, error)
	List(ctx context.Context, userID string) (domain.WorkingSet, error)
	SaveChanges(ctx context.Context, userID string, workingSet domain.WorkingSet) (*SaveResult, error)
}

// SaveResult reports what a save accrued. PointsAwarded is zero for a
// neutral "saved" outcome.
type SaveResult struct {
	PointsAwarded int
	NewTotal      int
}

type goalServiceImpl struct {
	recRepo repository.RecommendationRepository
	ledger  PointsService
	source  domain.GoalSource
	cache   domain.Cache
}

func NewGoalService(
	recRepo repository.RecommendationRepository,
	ledger PointsService,
	source domain.GoalSource,
	cache domain.Cache,
) GoalService {
	return &goalServiceImpl{
		recRepo: recRepo,
		ledger:  ledger,
		source:  source,
		cache:   cache,
	}
}

// CanGenerateToday is true unless a batch was already generated for this
// user on the current local calendar day.
func (s *goalServiceImpl) CanGenerateToday(ctx context.Context, userID string) (bool, error) {
	stored, err := s.cache.Get(ctx, s.lastGenKey(userID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return true, nil
		}
		return false, domain.NewInternalError("failed to read generation gate", err)
	}
	return stored != time.Now().Local().Format(lastGenDateLayout), nil
}

// Generate replaces the user's recommendation set with a fresh batch from
// the goal source. It fails fast when the daily gate is closed and performs
// no writes when the source yields nothing usable.
func (s *goalServiceImpl) Generate(ctx context.Context, userID string) (domain.WorkingSet, error) {
	canGenerate, err := s.CanGenerateToday(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !canGenerate {
		return nil, domain.NewValidationError("daily goals were already generated today")
	}

	candidates, err := s.source.FetchGoals(ctx, userID)
	if err != nil {
		return nil, domain.NewGenerationError("goal source returned nothing usable", err)
	}
	if len(candidates) == 0 {
		return nil, domain.NewGenerationError("goal source returned no goals", nil)
	}

	recs := make([]domain.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		recs = append(recs, domain.Recommendation{
			ID:         util.NewULID(),
			UserID:     userID,
			Goal:       c.Goal,
			Category:   c.Category,
			Difficulty: c.Difficulty,
		})
	}

	if err := s.recRepo.ReplaceAll(ctx, userID, recs); err != nil {
		return nil, domain.NewPersistenceError("recommendations replace", err)
	}

	today := time.Now().Local().Format(lastGenDateLayout)
	if err := s.cache.Set(ctx, s.lastGenKey(userID), today, lastGenTTL); err != nil {
		logger.Get().Warn("Failed to record goal generation date",
			zap.String("userID", userID), zap.Error(err))
	}

	// A fresh batch starts with every status absent, i.e. incomplete.
	workingSet := make(domain.WorkingSet, 0, len(recs))
	snapshot := make(domain.CompletionSnapshot, len(recs))
	for _, rec := range recs {
		workingSet = append(workingSet, domain.GoalItem{Recommendation: rec})
		snapshot[rec.ID] = false
	}
	s.storeSnapshot(ctx, userID, snapshot)

	logger.Get().Info("Generated goal batch",
		zap.String("userID", userID), zap.Int("count", len(recs)))
	return workingSet, nil
}

// List returns the stored batch with completion derived by joining the
// status rows, and captures a completion snapshot so a later save can diff
// without re-reading the store.
func (s *goalServiceImpl) List(ctx context.Context, userID string) (domain.WorkingSet, error) {
	recs, err := s.recRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load recommendations", err)
	}

	completed, err := s.loadPersistedCompletion(ctx, userID)
	if err != nil {
		return nil, err
	}

	workingSet := make(domain.WorkingSet, 0, len(recs))
	snapshot := make(domain.CompletionSnapshot, len(recs))
	for _, rec := range recs {
		workingSet = append(workingSet, domain.GoalItem{
			Recommendation: rec,
			IsCompleted:    completed[rec.ID],
		})
		snapshot[rec.ID] = completed[rec.ID]
	}
	s.storeSnapshot(ctx, userID, snapshot)

	return workingSet, nil
}

// SaveChanges diffs the working set against the snapshot captured at fetch
// time, persists every status via a batched upsert and awards the tariff for
// goals that flipped incomplete to complete. A failed upsert awards nothing.
func (s *goalServiceImpl) SaveChanges(ctx context.Context, userID string, workingSet domain.WorkingSet) (*SaveResult, error) {
	snapshot, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	accrued := workingSet.AccruedPoints(snapshot)

	statuses := make([]domain.RecommendationStatus, 0, len(workingSet))
	for _, item := range workingSet {
		statuses = append(statuses, domain.RecommendationStatus{
			UserID:           userID,
			RecommendationID: item.ID,
			IsCompleted:      item.IsCompleted,
		})
	}
	if err := s.recRepo.UpsertStatuses(ctx, statuses); err != nil {
		return nil, domain.NewPersistenceError("recommendation_status upsert", err)
	}

	result := &SaveResult{PointsAwarded: accrued}
	if accrued > 0 {
		total, err := s.ledger.Award(ctx, userID, accrued)
		if err != nil {
			return nil, err
		}
		result.NewTotal = total
	}

	// The persisted state is now the baseline for the next save.
	updated := make(domain.CompletionSnapshot, len(workingSet))
	for _, item := range workingSet {
		updated[item.ID] = item.IsCompleted
	}
	s.storeSnapshot(ctx, userID, updated)

	logger.Get().Info("Goal changes saved",
		zap.String("userID", userID), zap.Int("awarded", accrued))
	return result, nil
}

// loadSnapshot prefers the snapshot captured at fetch time; if it expired,
// it falls back to reading the persisted statuses.
func (s *goalServiceImpl) loadSnapshot(ctx context.Context, userID string) (domain.CompletionSnapshot, error) {
	raw, err := s.cache.Get(ctx, s.snapshotKey(userID))
	if err == nil {
		var snapshot domain.CompletionSnapshot
		if jsonErr := json.Unmarshal([]byte(raw), &snapshot); jsonErr == nil {
			return snapshot, nil
		}
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		return nil, domain.NewInternalError("failed to read completion snapshot", err)
	}

	completed, err := s.loadPersistedCompletion(ctx, userID)
	if err != nil {
		return nil, err
	}
	snapshot := make(domain.CompletionSnapshot, len(completed))
	for id, done := range completed {
		snapshot[id] = done
	}
	return snapshot, nil
}

func (s *goalServiceImpl) loadPersistedCompletion(ctx context.Context, userID string) (map[string]bool, error) {
	statuses, err := s.recRepo.ListStatuses(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load recommendation statuses", err)
	}
	completed := make(map[string]bool, len(statuses))
	for _, status := range statuses {
		completed[status.RecommendationID] = status.IsCompleted
	}
	return completed, nil
}

func (s *goalServiceImpl) storeSnapshot(ctx context.Context, userID string, snapshot domain.CompletionSnapshot) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.snapshotKey(userID), string(raw), snapshotTTL); err != nil {
		logger.Get().Warn("Failed to store completion snapshot",
			zap.String("userID", userID), zap.Error(err))
	}
}

func (s *goalServiceImpl) lastGenKey(userID string) string {
	return cacheKey("goals", "lastgen", userID)
}

func (s *goalServiceImpl) snapshotKey(userID string) string {
	return cacheKey("goals", "snapshot", userID)
}

package domain

// Category classifies a generated goal.
type Category string

const (
	CategoryDiet         Category = "Diet"
	CategoryExercise     Category = "Exercise"
	CategoryMentalHealth Category = "Mental Health"
	CategoryGeneral      Category = "General"
)

func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryDiet, CategoryExercise, CategoryMentalHealth, CategoryGeneral:
		return Category(s), true
	}
	return "", false
}

// Difficulty tiers map to a fixed point tariff.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), true
	}
	return "", false
}

// Tariff is the fixed point value awarded when a goal of the given
// difficulty transitions from incomplete to complete.
var Tariff = map[Difficulty]int{
	DifficultyEasy:   2,
	DifficultyMedium: 5,
	DifficultyHard:   8,
}

// Recommendation is a single generated goal. Completion is never stored on
// this row; it is always derived by joining RecommendationStatus.
type Recommendation struct {
	ID         string
	UserID     string
	Goal       string
	Category   Category
	Difficulty Difficulty
}

// GoalCandidate is a parsed goal-source line before ids are assigned.
type GoalCandidate struct {
	Goal       string
	Category   Category
	Difficulty Difficulty
}

// RecommendationStatus is the per-(user, recommendation) completion flag,
// upserted independently of the Recommendation row so a regenerated batch
// starts clean while status writes stay idempotent.
type RecommendationStatus struct {
	UserID           string
	RecommendationID string
	IsCompleted      bool
}

// GoalItem is a recommendation with its derived completion flag.
type GoalItem struct {
	Recommendation
	IsCompleted bool
}

// WorkingSet is the in-memory, not-yet-persisted copy of goals a user is
// editing.
type WorkingSet []GoalItem

// Toggle flips the completion flag of the goal with the given id. It is a
// pure in-memory operation; nothing is persisted.
func (ws WorkingSet) Toggle(recommendationID string) {
	for i := range ws {
		if ws[i].ID == recommendationID {
			ws[i].IsCompleted = !ws[i].IsCompleted
			return
		}
	}
}

// CompletionSnapshot is the completion state captured when goals were last
// fetched, carried alongside the working set so saving can diff without
// re-reading the store.
type CompletionSnapshot map[string]bool

// AccruedPoints sums the tariff for every goal that was incomplete in the
// snapshot and is complete in the working set. Goals already complete, or
// absent from the snapshot and still incomplete, contribute nothing.
func (ws WorkingSet) AccruedPoints(snapshot CompletionSnapshot) int {
	total := 0
	for _, item := range ws {
		if item.IsCompleted && !snapshot[item.ID] {
			total += Tariff[item.Difficulty]
		}
	}
	return total
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleWorkingSet() WorkingSet {
	return WorkingSet{
		{Recommendation: Recommendation{ID: "r1", Difficulty: DifficultyEasy}, IsCompleted: false},
		{Recommendation: Recommendation{ID: "r2", Difficulty: DifficultyMedium}, IsCompleted: false},
		{Recommendation: Recommendation{ID: "r3", Difficulty: DifficultyHard}, IsCompleted: true},
	}
}

func TestWorkingSet_Toggle(t *testing.T) {
	ws := sampleWorkingSet()

	ws.Toggle("r1")
	assert.True(t, ws[0].IsCompleted)

	ws.Toggle("r1")
	assert.False(t, ws[0].IsCompleted)

	// Unknown id is a no-op.
	ws.Toggle("missing")
	assert.False(t, ws[0].IsCompleted)
	assert.False(t, ws[1].IsCompleted)
	assert.True(t, ws[2].IsCompleted)
}

func TestWorkingSet_AccruedPoints(t *testing.T) {
	t.Run("SumsOnlyNewCompletions", func(t *testing.T) {
		ws := sampleWorkingSet()
		ws.Toggle("r1")
		ws.Toggle("r2")

		// r3 was already complete when the set was fetched.
		snapshot := CompletionSnapshot{"r1": false, "r2": false, "r3": true}
		assert.Equal(t, 7, ws.AccruedPoints(snapshot))
	})

	t.Run("AlreadyCompleteContributesNothing", func(t *testing.T) {
		ws := sampleWorkingSet()
		snapshot := CompletionSnapshot{"r1": false, "r2": false, "r3": true}
		assert.Equal(t, 0, ws.AccruedPoints(snapshot))
	})

	t.Run("UncompletingAwardsNothing", func(t *testing.T) {
		ws := sampleWorkingSet()
		ws.Toggle("r3")
		snapshot := CompletionSnapshot{"r3": true}
		assert.Equal(t, 0, ws.AccruedPoints(snapshot))
	})

	t.Run("AbsentFromSnapshotCountsAsIncomplete", func(t *testing.T) {
		ws := WorkingSet{
			{Recommendation: Recommendation{ID: "new", Difficulty: DifficultyHard}, IsCompleted: true},
		}
		assert.Equal(t, 8, ws.AccruedPoints(CompletionSnapshot{}))
	})
}

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{"Diet", "Exercise", "Mental Health", "General"} {
		_, ok := ParseCategory(valid)
		assert.True(t, ok, valid)
	}
	_, ok := ParseCategory("Sleep")
	assert.False(t, ok)
}

func TestParseDifficulty(t *testing.T) {
	for _, valid := range []string{"Easy", "Medium", "Hard"} {
		_, ok := ParseDifficulty(valid)
		assert.True(t, ok, valid)
	}
	_, ok := ParseDifficulty("easy")
	assert.False(t, ok)
}

func TestTariff(t *testing.T) {
	assert.Equal(t, 2, Tariff[DifficultyEasy])
	assert.Equal(t, 5, Tariff[DifficultyMedium])
	assert.Equal(t, 8, Tariff[DifficultyHard])
}

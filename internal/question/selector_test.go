package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorNeverReturnsExcluded(t *testing.T) {
	sel := NewSelector(NewSeededSource(1))
	qs := []Question{{ID: 1, CategoryID: 1}, {ID: 2, CategoryID: 1}, {ID: 3, CategoryID: 2}, {ID: 4, CategoryID: 2}}
	cats := Categories{1: "Science", 2: "Art"}

	for i := 0; i < 200; i++ {
		draw, err := sel.Next(qs, cats, AllCategories(), []int64{1, 3})
		require.NoError(t, err)
		require.Equal(t, StateDrawn, draw.State)
		assert.Contains(t, []int64{2, 4}, draw.Question.ID)
	}
}

func TestSelectorReachesExhaustion(t *testing.T) {
	sel := NewSelector(NewSeededSource(2))
	qs := []Question{{ID: 1, CategoryID: 1}, {ID: 2, CategoryID: 1}, {ID: 3, CategoryID: 1}, {ID: 4, CategoryID: 2}}
	cats := Categories{1: "Science", 2: "Art"}

	var served []int64
	for {
		draw, err := sel.Next(qs, cats, InCategory(1), served)
		require.NoError(t, err)
		if draw.Exhausted() {
			assert.Nil(t, draw.Question)
			break
		}
		assert.NotContains(t, served, draw.Question.ID)
		assert.Equal(t, int64(1), draw.Question.CategoryID)
		served = append(served, draw.Question.ID)
		require.LessOrEqual(t, len(served), 3)
	}
	assert.ElementsMatch(t, []int64{1, 2, 3}, served)
}

func TestSelectorExhaustedScenario(t *testing.T) {
	sel := NewSelector(nil)
	draw, err := sel.Next(sampleQuestions(), sampleCategories(), AllCategories(), []int64{1, 2})
	require.NoError(t, err)
	assert.True(t, draw.Exhausted())
	assert.Nil(t, draw.Question)
}

func TestSelectorUnknownCategoryFailsBeforeDraw(t *testing.T) {
	src := &countingSource{}
	sel := NewSelector(src)

	draw, err := sel.Next(sampleQuestions(), sampleCategories(), InCategory(3), nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, StateReady, draw.State)
	assert.Zero(t, src.calls)
}

func TestSelectorDistributionIsUniform(t *testing.T) {
	sel := NewSelector(NewSeededSource(42))
	qs := []Question{{ID: 1, CategoryID: 1}, {ID: 2, CategoryID: 1}, {ID: 3, CategoryID: 1}}
	cats := Categories{1: "Science"}

	const trials = 3000
	counts := map[int64]int{}
	for i := 0; i < trials; i++ {
		draw, err := sel.Next(qs, cats, AllCategories(), nil)
		require.NoError(t, err)
		counts[draw.Question.ID]++
	}

	for _, q := range qs {
		assert.Greater(t, counts[q.ID], 0, "question %d never drawn", q.ID)
		assert.InDelta(t, trials/3, counts[q.ID], 300, "question %d frequency skewed", q.ID)
	}
}

func TestSeededSourceIsDeterministic(t *testing.T) {
	a, b := NewSeededSource(9), NewSeededSource(9)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestEligibleKeepsOrder(t *testing.T) {
	qs := []Question{{ID: 5, CategoryID: 1}, {ID: 2, CategoryID: 2}, {ID: 9, CategoryID: 1}}
	assert.Equal(t, []int64{5, 9}, ids(Eligible(qs, InCategory(1), nil)))
	assert.Equal(t, []int64{2, 9}, ids(Eligible(qs, AllCategories(), []int64{5})))
}

type countingSource struct{ calls int }

func (c *countingSource) IntN(n int) int {
	c.calls++
	return 0
}

package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker-api/domain/models"
)

func ptr(s string) *string { return &s }

func fixtureTasks() []*models.Task {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*models.Task{
		{ID: 1, Title: "Foobar", Priority: models.PriorityLow, Category: models.CategoryWork, CreatedAt: base},
		{ID: 2, Title: "Groceries", Description: ptr("buy FOOD and milk"), Priority: models.PriorityHigh, Category: models.CategoryShopping, CreatedAt: base.Add(time.Minute)},
		{ID: 3, Title: "Dentist", Completed: true, Priority: models.PriorityHigh, Category: models.CategoryHealth, CreatedAt: base.Add(2 * time.Minute)},
		{ID: 4, Title: "Ship release", Priority: models.PriorityUrgent, Category: models.CategoryWork, CreatedAt: base.Add(3 * time.Minute)},
		{ID: 5, Title: "Read book", Completed: true, Priority: models.PriorityMedium, Category: models.CategoryEducation, CreatedAt: base.Add(4 * time.Minute)},
		{ID: 6, Title: "Call mom", Priority: models.PriorityHigh, Category: models.CategoryPersonal, CreatedAt: base.Add(5 * time.Minute)},
	}
}

func ids(tasks []*models.Task) []uint {
	out := make([]uint, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestApplyDefaultOrder(t *testing.T) {
	got := New().Apply(fixtureTasks())

	// incomplete first, then priority desc, then newest first
	assert.Equal(t, []uint{4, 6, 2, 1, 3, 5}, ids(got))
}

func TestApplyTieBreakIsStable(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tasks := []*models.Task{
		{ID: 10, Title: "a", Priority: models.PriorityMedium, CreatedAt: base},
		{ID: 11, Title: "b", Priority: models.PriorityMedium, CreatedAt: base},
	}

	first := ids(New().Apply(tasks))
	second := ids(New().Apply([]*models.Task{tasks[1], tasks[0]}))
	assert.Equal(t, first, second)
	assert.Equal(t, []uint{11, 10}, first)
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name  string
		preds []Predicate
		want  []uint
	}{
		{"completed only", []Predicate{Completed(true)}, []uint{3, 5}},
		{"pending only", []Predicate{Completed(false)}, []uint{4, 6, 2, 1}},
		{"completed and high", []Predicate{Completed(true), PriorityIs(models.PriorityHigh)}, []uint{3}},
		{"category", []Predicate{CategoryIs(models.CategoryWork)}, []uint{4, 1}},
		{"search title case-insensitive", []Predicate{Search("foo")}, []uint{2, 1}},
		{"search no match", []Predicate{Search("zzz")}, []uint{}},
		{"search and category", []Predicate{Search("foo"), CategoryIs(models.CategoryShopping)}, []uint{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().Where(tt.preds...).Apply(fixtureTasks())
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSearchIgnoresMissingDescription(t *testing.T) {
	task := &models.Task{Title: "Plain"}
	assert.False(t, Search("foo").Matches(task))

	task.Description = ptr("all about FOO")
	assert.True(t, Search("foo").Matches(task))
}

func TestApplyPagination(t *testing.T) {
	tasks := fixtureTasks()

	assert.Equal(t, []uint{6, 2}, ids(New().Page(1, 2).Apply(tasks)))
	assert.Equal(t, []uint{5}, ids(New().Page(5, 10).Apply(tasks)))

	past := New().Page(50, 10).Apply(tasks)
	require.NotNil(t, past)
	assert.Empty(t, past)
}

func TestWhereSkipsNil(t *testing.T) {
	q := New().Where(nil, Completed(true), nil)
	assert.Len(t, q.Predicates, 1)
}

func TestSearchSQLEscapesWildcards(t *testing.T) {
	clause, args := Search("50%_off").SQL()
	assert.Contains(t, clause, "LOWER(title) LIKE LOWER(?)")
	require.Len(t, args, 2)
	assert.Equal(t, `%50\%\_off%`, args[0])
}

func TestSearchNonASCII(t *testing.T) {
	task := &models.Task{Title: "Çalışma raporu"}
	assert.True(t, Search("ÇALIŞMA").Matches(task))
	assert.True(t, Search("çalışma").Matches(task))

	// folding happens in SQL so both sides use the same LOWER
	_, args := Search("ÖDEV").SQL()
	assert.Equal(t, "%ÖDEV%", args[0])
}

func TestOrderBy(t *testing.T) {
	terms := OrderBy()
	require.Len(t, terms, 4)
	assert.Equal(t, "completed ASC", terms[0])
	assert.Equal(t, "CASE priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 WHEN 'urgent' THEN 4 ELSE 0 END DESC", terms[1])
	assert.Equal(t, "created_at DESC", terms[2])
}

package query

import (
	"fmt"
	"sort"
	"strings"

	"task-tracker-api/domain/models"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Predicate is one conjunct of a task query. It can be evaluated in memory or
// pushed down to SQL; both forms must agree.
type Predicate interface {
	Matches(t *models.Task) bool
	SQL() (string, []any)
}

// ========== Predicates ==========

type completedPredicate bool

// Completed matches tasks whose completion state equals v.
func Completed(v bool) Predicate {
	return completedPredicate(v)
}

func (p completedPredicate) Matches(t *models.Task) bool {
	return t.Completed == bool(p)
}

func (p completedPredicate) SQL() (string, []any) {
	return "completed = ?", []any{bool(p)}
}

type priorityPredicate models.Priority

func PriorityIs(p models.Priority) Predicate {
	return priorityPredicate(p)
}

func (p priorityPredicate) Matches(t *models.Task) bool {
	return t.Priority == models.Priority(p)
}

func (p priorityPredicate) SQL() (string, []any) {
	return "priority = ?", []any{string(p)}
}

type categoryPredicate models.Category

func CategoryIs(c models.Category) Predicate {
	return categoryPredicate(c)
}

func (p categoryPredicate) Matches(t *models.Task) bool {
	return t.Category == models.Category(p)
}

func (p categoryPredicate) SQL() (string, []any) {
	return "category = ?", []any{string(p)}
}

type searchPredicate string

// Search matches a case-insensitive substring of title or description.
// Tasks without a description can only match on title. The SQL form relies on
// LOWER folding like strings.ToLower, which the SQLite driver in
// infrastructure/database provides.
func Search(term string) Predicate {
	return searchPredicate(term)
}

func (p searchPredicate) Matches(t *models.Task) bool {
	term := strings.ToLower(string(p))
	if strings.Contains(strings.ToLower(t.Title), term) {
		return true
	}
	return t.Description != nil && strings.Contains(strings.ToLower(*t.Description), term)
}

func (p searchPredicate) SQL() (string, []any) {
	pattern := "%" + escapeLike(string(p)) + "%"
	return `(LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(description) LIKE LOWER(?) ESCAPE '\')`, []any{pattern, pattern}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ========== Query ==========

// TaskQuery is a conjunction of predicates plus offset pagination.
type TaskQuery struct {
	Predicates []Predicate
	Skip       int
	Limit      int
}

func New() *TaskQuery {
	return &TaskQuery{Limit: DefaultLimit}
}

// Where appends predicates; nil entries are ignored.
func (q *TaskQuery) Where(preds ...Predicate) *TaskQuery {
	for _, p := range preds {
		if p != nil {
			q.Predicates = append(q.Predicates, p)
		}
	}
	return q
}

func (q *TaskQuery) Page(skip, limit int) *TaskQuery {
	q.Skip = skip
	q.Limit = limit
	return q
}

func (q *TaskQuery) Matches(t *models.Task) bool {
	for _, p := range q.Predicates {
		if !p.Matches(t) {
			return false
		}
	}
	return true
}

// Apply runs the whole query contract in memory: filter, order, then paginate.
// The input slice is not modified.
func (q *TaskQuery) Apply(tasks []*models.Task) []*models.Task {
	matched := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Matches(t) {
			matched = append(matched, t)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return Less(matched[i], matched[j])
	})

	if q.Skip >= len(matched) {
		return []*models.Task{}
	}
	end := len(matched)
	if q.Limit > 0 && q.Skip+q.Limit < end {
		end = q.Skip + q.Limit
	}
	return matched[q.Skip:end]
}

// Less is the list order: incomplete first, higher priority first, newest
// first, then higher id first.
func Less(a, b *models.Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra > rb
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// OrderBy returns the SQL ORDER BY terms equivalent to Less.
func OrderBy() []string {
	return []string{
		"completed ASC",
		priorityRankSQL() + " DESC",
		"created_at DESC",
		"id DESC",
	}
}

func priorityRankSQL() string {
	var b strings.Builder
	b.WriteString("CASE priority")
	for _, p := range models.AllPriorities() {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", p, p.Rank())
	}
	b.WriteString(" ELSE 0 END")
	return b.String()
}

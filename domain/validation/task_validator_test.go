package validation

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker-api/domain/dto"
	"task-tracker-api/domain/models"
	"task-tracker-api/pkg/apperror"
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func newTestValidator() *TaskValidator {
	return NewTaskValidator(func() time.Time { return fixedNow })
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func TestValidateCreate(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		req     dto.CreateTaskRequest
		wantMsg string
	}{
		{"empty title", dto.CreateTaskRequest{Title: ""}, MsgTitleRequired},
		{"whitespace title", dto.CreateTaskRequest{Title: "   \t "}, MsgTitleRequired},
		{"title too long", dto.CreateTaskRequest{Title: strings.Repeat("x", 201)}, MsgTitleTooLong},
		{"description too long", dto.CreateTaskRequest{Title: "ok", Description: strPtr(strings.Repeat("d", 1001))}, MsgDescriptionTooLong},
		{"due one second in past", dto.CreateTaskRequest{Title: "ok", DueDate: timePtr(fixedNow.Add(-time.Second))}, MsgDueDateInPast},
		{"bad priority", dto.CreateTaskRequest{Title: "ok", Priority: "critical"}, MsgInvalidEnum},
		{"bad category", dto.CreateTaskRequest{Title: "ok", Category: "garden"}, MsgInvalidEnum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateCreate(&tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, tt.wantMsg, apperror.MessageOf(err))
		})
	}
}

func TestValidateCreateAccepts(t *testing.T) {
	v := newTestValidator()

	t.Run("defaults and trimming", func(t *testing.T) {
		task, err := v.ValidateCreate(&dto.CreateTaskRequest{Title: "  Write report  "})
		require.NoError(t, err)
		assert.Equal(t, "Write report", task.Title)
		assert.Equal(t, models.PriorityMedium, task.Priority)
		assert.Equal(t, models.CategoryOther, task.Category)
		assert.False(t, task.Completed)
		assert.Nil(t, task.Description)
		assert.Nil(t, task.DueDate)
	})

	t.Run("due exactly now", func(t *testing.T) {
		task, err := v.ValidateCreate(&dto.CreateTaskRequest{Title: "now", DueDate: timePtr(fixedNow)})
		require.NoError(t, err)
		assert.True(t, task.DueDate.Equal(fixedNow))
	})

	t.Run("due in future", func(t *testing.T) {
		_, err := v.ValidateCreate(&dto.CreateTaskRequest{Title: "later", DueDate: timePtr(fixedNow.Add(time.Hour))})
		assert.NoError(t, err)
	})

	t.Run("upper-case enum names", func(t *testing.T) {
		task, err := v.ValidateCreate(&dto.CreateTaskRequest{Title: "x", Priority: "URGENT", Category: "HEALTH"})
		require.NoError(t, err)
		assert.Equal(t, models.PriorityUrgent, task.Priority)
		assert.Equal(t, models.CategoryHealth, task.Category)
	})

	t.Run("limits are inclusive", func(t *testing.T) {
		_, err := v.ValidateCreate(&dto.CreateTaskRequest{
			Title:       strings.Repeat("t", 200),
			Description: strPtr(strings.Repeat("d", 1000)),
		})
		assert.NoError(t, err)
	})
}

func TestValidateCreateCollectsAllViolations(t *testing.T) {
	v := newTestValidator()
	_, err := v.ValidateCreate(&dto.CreateTaskRequest{Title: " ", Priority: "nope"})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{MsgTitleRequired, MsgInvalidEnum}, apperror.DetailsOf(err))
}

func decodeUpdate(t *testing.T, body string) *dto.UpdateTaskRequest {
	t.Helper()
	var req dto.UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestValidateUpdate(t *testing.T) {
	v := newTestValidator()

	t.Run("only supplied fields are set", func(t *testing.T) {
		patch, err := v.ValidateUpdate(decodeUpdate(t, `{"title":"  renamed ","priority":"high"}`))
		require.NoError(t, err)
		assert.True(t, patch.Title.Set)
		assert.Equal(t, "renamed", patch.Title.Value)
		assert.True(t, patch.Priority.Set)
		assert.Equal(t, models.PriorityHigh, patch.Priority.Value)
		assert.False(t, patch.Description.Set)
		assert.False(t, patch.Completed.Set)
		assert.False(t, patch.Category.Set)
		assert.False(t, patch.DueDate.Set)
	})

	t.Run("null clears nullable fields", func(t *testing.T) {
		patch, err := v.ValidateUpdate(decodeUpdate(t, `{"description":null,"due_date":null}`))
		require.NoError(t, err)
		assert.True(t, patch.Description.Set)
		assert.Nil(t, patch.Description.Value)
		assert.True(t, patch.DueDate.Set)
		assert.Nil(t, patch.DueDate.Value)
	})

	t.Run("empty body is an empty patch", func(t *testing.T) {
		patch, err := v.ValidateUpdate(decodeUpdate(t, `{}`))
		require.NoError(t, err)
		assert.True(t, patch.Empty())
	})

	failures := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"blank title", `{"title":"  "}`, MsgTitleRequired},
		{"null title", `{"title":null}`, MsgTitleRequired},
		{"null completed", `{"completed":null}`, MsgCompletedInvalid},
		{"null priority", `{"priority":null}`, MsgInvalidEnum},
		{"unknown category", `{"category":"garden"}`, MsgInvalidEnum},
		{"long description", `{"description":"` + strings.Repeat("d", 1001) + `"}`, MsgDescriptionTooLong},
		{"past due date", `{"due_date":"2026-10-14T09:29:59Z"}`, MsgDueDateInPast},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateUpdate(decodeUpdate(t, tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, tt.wantMsg, apperror.MessageOf(err))
		})
	}

	t.Run("due date exactly now", func(t *testing.T) {
		patch, err := v.ValidateUpdate(decodeUpdate(t, `{"due_date":"2026-10-14T09:30:00Z"}`))
		require.NoError(t, err)
		require.NotNil(t, patch.DueDate.Value)
		assert.True(t, patch.DueDate.Value.Equal(fixedNow))
	})
}

func TestValidateFilter(t *testing.T) {
	v := newTestValidator()
	boolPtr := func(b bool) *bool { return &b }

	t.Run("defaults", func(t *testing.T) {
		q, err := v.ValidateFilter(&dto.TaskFilterRequest{Skip: dto.DefaultListSkip, Limit: dto.DefaultListLimit})
		require.NoError(t, err)
		assert.Equal(t, 0, q.Skip)
		assert.Equal(t, 100, q.Limit)
		assert.Empty(t, q.Predicates)
	})

	t.Run("all filters", func(t *testing.T) {
		q, err := v.ValidateFilter(&dto.TaskFilterRequest{
			Limit:     10,
			Completed: boolPtr(true),
			Priority:  strPtr("HIGH"),
			Category:  strPtr("work"),
			Search:    strPtr("foo"),
		})
		require.NoError(t, err)
		assert.Len(t, q.Predicates, 4)
	})

	t.Run("empty strings are ignored", func(t *testing.T) {
		q, err := v.ValidateFilter(&dto.TaskFilterRequest{Limit: 10, Priority: strPtr(""), Search: strPtr("")})
		require.NoError(t, err)
		assert.Empty(t, q.Predicates)
	})

	bad := []struct {
		name string
		req  dto.TaskFilterRequest
		msg  string
	}{
		{"negative skip", dto.TaskFilterRequest{Skip: -1, Limit: 10}, MsgInvalidPagination},
		{"zero limit", dto.TaskFilterRequest{Limit: 0}, MsgInvalidPagination},
		{"limit too large", dto.TaskFilterRequest{Limit: 1001}, MsgInvalidPagination},
		{"bad priority", dto.TaskFilterRequest{Limit: 10, Priority: strPtr("bogus")}, MsgInvalidEnum},
		{"bad category", dto.TaskFilterRequest{Limit: 10, Category: strPtr("bogus")}, MsgInvalidEnum},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateFilter(&tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.msg, apperror.MessageOf(err))
		})
	}
}

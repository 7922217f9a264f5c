package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker-api/pkg/apperror"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"low", PriorityLow, false},
		{"HIGH", PriorityHigh, false},
		{" Urgent ", PriorityUrgent, false},
		{"critical", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperror.ErrValidation)
				assert.Equal(t, "invalid enum value", apperror.MessageOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory("EDUCATION")
	require.NoError(t, err)
	assert.Equal(t, CategoryEducation, got)

	_, err = ParseCategory("hobby")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestPriorityRank(t *testing.T) {
	all := AllPriorities()
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].Rank(), all[i-1].Rank(), "%s should outrank %s", all[i], all[i-1])
	}
	assert.Zero(t, Priority("bogus").Rank())
}

func TestEnumValuerRejectsUnknown(t *testing.T) {
	_, err := Priority("bogus").Value()
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = Category("").Value()
	assert.ErrorIs(t, err, apperror.ErrValidation)

	v, err := CategoryHealth.Value()
	require.NoError(t, err)
	assert.Equal(t, "health", v)
}

func TestEnumScan(t *testing.T) {
	var p Priority
	require.NoError(t, p.Scan([]byte("high")))
	assert.Equal(t, PriorityHigh, p)

	var c Category
	require.NoError(t, c.Scan("SHOPPING"))
	assert.Equal(t, CategoryShopping, c)

	assert.Error(t, c.Scan(42))
	assert.ErrorIs(t, c.Scan("garden"), apperror.ErrValidation)
}

func TestTaskTouch(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("clock advanced", func(t *testing.T) {
		task := Task{CreatedAt: base, UpdatedAt: base}
		task.Touch(base.Add(time.Second))
		assert.Equal(t, base.Add(time.Second), task.UpdatedAt)
	})

	t.Run("clock stalled", func(t *testing.T) {
		task := Task{CreatedAt: base, UpdatedAt: base}
		task.Touch(base)
		assert.True(t, task.UpdatedAt.After(base))
	})

	t.Run("sub-microsecond advance", func(t *testing.T) {
		task := Task{CreatedAt: base, UpdatedAt: base}
		task.Touch(base.Add(500 * time.Nanosecond))
		assert.Equal(t, base.Add(time.Microsecond), task.UpdatedAt)
	})

	t.Run("drops nanoseconds", func(t *testing.T) {
		task := Task{CreatedAt: base, UpdatedAt: base}
		task.Touch(base.Add(2*time.Second + 1234*time.Nanosecond))
		assert.Equal(t, base.Add(2*time.Second+time.Microsecond), task.UpdatedAt)
	})

	t.Run("clock went backwards", func(t *testing.T) {
		task := Task{CreatedAt: base, UpdatedAt: base}
		task.Touch(base.Add(-time.Hour))
		assert.True(t, task.UpdatedAt.After(base))
	})
}

func TestTaskPatchApply(t *testing.T) {
	desc := "keep me"
	due := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	task := Task{
		Title:       "original",
		Description: &desc,
		Priority:    PriorityLow,
		Category:    CategoryWork,
		DueDate:     &due,
	}

	patch := TaskPatch{
		Title:   TaskField[string]{Set: true, Value: "renamed"},
		DueDate: TaskField[*time.Time]{Set: true, Value: nil},
	}
	assert.False(t, patch.Empty())
	patch.Apply(&task)

	assert.Equal(t, "renamed", task.Title)
	assert.Nil(t, task.DueDate)
	require.NotNil(t, task.Description)
	assert.Equal(t, "keep me", *task.Description)
	assert.Equal(t, PriorityLow, task.Priority)
	assert.Equal(t, CategoryWork, task.Category)
	assert.True(t, (&TaskPatch{}).Empty())
}

func TestSummarizeTasksEmpty(t *testing.T) {
	stats := SummarizeTasks(nil)

	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.Completed)
	assert.Zero(t, stats.Pending)
	assert.Len(t, stats.ByPriority, len(AllPriorities()))
	assert.Len(t, stats.ByCategory, len(AllCategories()))
	for _, p := range AllPriorities() {
		assert.Contains(t, stats.ByPriority, p)
	}
	for _, c := range AllCategories() {
		assert.Contains(t, stats.ByCategory, c)
	}
}

func TestSummarizeTasks(t *testing.T) {
	stats := SummarizeTasks([]Task{
		{Completed: true, Priority: PriorityHigh, Category: CategoryWork},
		{Completed: false, Priority: PriorityHigh, Category: CategoryHealth},
		{Completed: false, Priority: PriorityLow, Category: CategoryWork},
	})

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(2), stats.ByPriority[PriorityHigh])
	assert.Equal(t, int64(0), stats.ByPriority[PriorityUrgent])
	assert.Equal(t, int64(2), stats.ByCategory[CategoryWork])
	assert.Equal(t, int64(0), stats.ByCategory[CategoryOther])
}

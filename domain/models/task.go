package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"task-tracker-api/pkg/apperror"
)

const invalidEnumMessage = "invalid enum value"

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// AllPriorities lists every priority, lowest rank first.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// ParsePriority accepts the wire value or the member name in any case.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", apperror.Validation(invalidEnumMessage)
	}
	return p, nil
}

func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Rank orders priorities: URGENT > HIGH > MEDIUM > LOW. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	default:
		return 0
	}
}

func (p Priority) String() string {
	return string(p)
}

// Value refuses to persist a value outside the enumeration.
func (p Priority) Value() (driver.Value, error) {
	if !p.Valid() {
		return nil, apperror.Validation(invalidEnumMessage)
	}
	return string(p), nil
}

func (p *Priority) Scan(src any) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParsePriority(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Category is the closed set of task categories.
type Category string

const (
	CategoryWork      Category = "work"
	CategoryPersonal  Category = "personal"
	CategoryShopping  Category = "shopping"
	CategoryHealth    Category = "health"
	CategoryEducation Category = "education"
	CategoryOther     Category = "other"
)

func AllCategories() []Category {
	return []Category{
		CategoryWork,
		CategoryPersonal,
		CategoryShopping,
		CategoryHealth,
		CategoryEducation,
		CategoryOther,
	}
}

// ParseCategory accepts the wire value or the member name in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", apperror.Validation(invalidEnumMessage)
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryShopping, CategoryHealth, CategoryEducation, CategoryOther:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

func (c Category) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, apperror.Validation(invalidEnumMessage)
	}
	return string(c), nil
}

func (c *Category) Scan(src any) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func scanString(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported enum source type %T", src)
	}
}

// Task is the only persisted entity. Timestamps are owned by the service layer.
type Task struct {
	ID          uint     `gorm:"primaryKey"`
	Title       string   `gorm:"size:200;not null;index"`
	Description *string  `gorm:"size:1000"`
	Completed   bool     `gorm:"not null;default:false;index"`
	Priority    Priority `gorm:"type:varchar(16);not null;default:'medium';index"`
	Category    Category `gorm:"type:varchar(16);not null;default:'other';index"`
	DueDate     *time.Time
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false;index"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (Task) TableName() string {
	return "tasks"
}

// BeforeSave keeps out-of-enumeration values from reaching storage.
func (t *Task) BeforeSave(*gorm.DB) error {
	if !t.Priority.Valid() || !t.Category.Valid() {
		return apperror.Validation(invalidEnumMessage)
	}
	return nil
}

// Touch refreshes UpdatedAt so that it strictly increases even when the clock
// has not advanced past the previous value. Timestamps keep microsecond
// precision, the finest Postgres stores.
func (t *Task) Touch(now time.Time) {
	now = now.Truncate(time.Microsecond)
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Microsecond)
	}
	t.UpdatedAt = now
}

// TaskField names one optional field of a TaskPatch.
type TaskField[T any] struct {
	Set   bool
	Value T
}

// TaskPatch is a sparse update. Only fields with Set == true are applied.
// Description and DueDate use a nil Value to clear the column.
type TaskPatch struct {
	Title       TaskField[string]
	Description TaskField[*string]
	Completed   TaskField[bool]
	Priority    TaskField[Priority]
	Category    TaskField[Category]
	DueDate     TaskField[*time.Time]
}

// Empty reports whether the patch touches nothing.
func (p *TaskPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Completed.Set &&
		!p.Priority.Set && !p.Category.Set && !p.DueDate.Set
}

// Apply copies the present fields onto t.
func (p *TaskPatch) Apply(t *Task) {
	if p.Title.Set {
		t.Title = p.Title.Value
	}
	if p.Description.Set {
		t.Description = p.Description.Value
	}
	if p.Completed.Set {
		t.Completed = p.Completed.Value
	}
	if p.Priority.Set {
		t.Priority = p.Priority.Value
	}
	if p.Category.Set {
		t.Category = p.Category.Value
	}
	if p.DueDate.Set {
		t.DueDate = p.DueDate.Value
	}
}

package validation

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"task-tracker-api/domain/dto"
	"task-tracker-api/domain/models"
	"task-tracker-api/domain/query"
	"task-tracker-api/pkg/apperror"
)

// Taxonomy messages returned to callers through apperror.
const (
	MsgTitleRequired      = "title required"
	MsgTitleTooLong       = "title too long"
	MsgDescriptionTooLong = "description too long"
	MsgDueDateInPast      = "due date in past"
	MsgInvalidEnum        = "invalid enum value"
	MsgCompletedInvalid   = "completed must be a boolean"
	MsgInvalidPagination  = "invalid pagination"
)

// Field rules, shared by create and update.
const (
	titleRules       = "notblank,max=200"
	descriptionRules = "max=1000"
	priorityRules    = "task_priority"
	categoryRules    = "task_category"
	dueDateRules     = "not_past"
)

// taskInput is the normalized create payload the struct rules run against.
type taskInput struct {
	Title       string     `validate:"notblank,max=200"`
	Description *string    `validate:"omitempty,max=1000"`
	Priority    string     `validate:"task_priority"`
	Category    string     `validate:"task_category"`
	DueDate     *time.Time `validate:"omitempty,not_past"`
}

// TaskValidator checks task payloads before they reach storage.
type TaskValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewTaskValidator builds a validator; now is read once per due date check.
func NewTaskValidator(now func() time.Time) *TaskValidator {
	if now == nil {
		now = time.Now
	}
	v := &TaskValidator{
		validate: validator.New(),
		now:      now,
	}

	_ = v.validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.validate.RegisterValidation("task_priority", func(fl validator.FieldLevel) bool {
		_, err := models.ParsePriority(fl.Field().String())
		return err == nil
	})
	_ = v.validate.RegisterValidation("task_category", func(fl validator.FieldLevel) bool {
		_, err := models.ParseCategory(fl.Field().String())
		return err == nil
	})
	_ = v.validate.RegisterValidation("not_past", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		// exactly now is accepted
		return !t.Before(v.now())
	})

	return v
}

// ValidateCreate returns an unsaved task with defaults applied.
func (v *TaskValidator) ValidateCreate(req *dto.CreateTaskRequest) (*models.Task, error) {
	in := taskInput{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Priority:    orDefault(req.Priority, models.PriorityMedium.String()),
		Category:    orDefault(req.Category, models.CategoryOther.String()),
		DueDate:     req.DueDate,
	}

	if err := v.validate.Struct(in); err != nil {
		return nil, toAppError(err)
	}

	priority, _ := models.ParsePriority(in.Priority)
	category, _ := models.ParseCategory(in.Category)

	return &models.Task{
		Title:       in.Title,
		Description: in.Description,
		Completed:   req.Completed,
		Priority:    priority,
		Category:    category,
		DueDate:     in.DueDate,
	}, nil
}

// ValidateUpdate converts a sparse request into a patch. Omitted keys stay
// unset; explicit nulls clear nullable columns and are rejected elsewhere.
func (v *TaskValidator) ValidateUpdate(req *dto.UpdateTaskRequest) (*models.TaskPatch, error) {
	patch := &models.TaskPatch{}
	var messages []string

	if req.Title.Set {
		title := strings.TrimSpace(req.Title.Value)
		if req.Title.Null {
			messages = append(messages, MsgTitleRequired)
		} else if msg := v.checkVar(title, titleRules, "Title"); msg != "" {
			messages = append(messages, msg)
		} else {
			patch.Title = models.TaskField[string]{Set: true, Value: title}
		}
	}

	if req.Description.Set {
		if req.Description.Null {
			patch.Description = models.TaskField[*string]{Set: true}
		} else if msg := v.checkVar(req.Description.Value, descriptionRules, "Description"); msg != "" {
			messages = append(messages, msg)
		} else {
			desc := req.Description.Value
			patch.Description = models.TaskField[*string]{Set: true, Value: &desc}
		}
	}

	if req.Completed.Set {
		if req.Completed.Null {
			messages = append(messages, MsgCompletedInvalid)
		} else {
			patch.Completed = models.TaskField[bool]{Set: true, Value: req.Completed.Value}
		}
	}

	if req.Priority.Set {
		if req.Priority.Null || v.checkVar(req.Priority.Value, priorityRules, "Priority") != "" {
			messages = append(messages, MsgInvalidEnum)
		} else {
			p, _ := models.ParsePriority(req.Priority.Value)
			patch.Priority = models.TaskField[models.Priority]{Set: true, Value: p}
		}
	}

	if req.Category.Set {
		if req.Category.Null || v.checkVar(req.Category.Value, categoryRules, "Category") != "" {
			messages = append(messages, MsgInvalidEnum)
		} else {
			c, _ := models.ParseCategory(req.Category.Value)
			patch.Category = models.TaskField[models.Category]{Set: true, Value: c}
		}
	}

	if req.DueDate.Set {
		if req.DueDate.Null {
			patch.DueDate = models.TaskField[*time.Time]{Set: true}
		} else if msg := v.checkVar(req.DueDate.Value, dueDateRules, "DueDate"); msg != "" {
			messages = append(messages, msg)
		} else {
			due := req.DueDate.Value
			patch.DueDate = models.TaskField[*time.Time]{Set: true, Value: &due}
		}
	}

	if len(messages) > 0 {
		return nil, apperror.ValidationList(messages)
	}
	return patch, nil
}

// ValidateFilter turns list parameters into a query.
func (v *TaskValidator) ValidateFilter(req *dto.TaskFilterRequest) (*query.TaskQuery, error) {
	if err := v.validate.Struct(req); err != nil {
		return nil, apperror.Validation(MsgInvalidPagination)
	}

	q := query.New().Page(req.Skip, req.Limit)

	if req.Completed != nil {
		q.Where(query.Completed(*req.Completed))
	}
	if req.Priority != nil && *req.Priority != "" {
		p, err := models.ParsePriority(*req.Priority)
		if err != nil {
			return nil, err
		}
		q.Where(query.PriorityIs(p))
	}
	if req.Category != nil && *req.Category != "" {
		c, err := models.ParseCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		q.Where(query.CategoryIs(c))
	}
	if req.Search != nil && *req.Search != "" {
		q.Where(query.Search(*req.Search))
	}

	return q, nil
}

func (v *TaskValidator) checkVar(value any, rules, field string) string {
	err := v.validate.Var(value, rules)
	if err == nil {
		return ""
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return messageFor(field, fieldErrs[0].Tag())
	}
	return messageFor(field, "")
}

func toAppError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.Internal(err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, messageFor(fe.StructField(), fe.Tag()))
	}
	return apperror.ValidationList(messages)
}

func messageFor(field, tag string) string {
	switch field {
	case "Title":
		if tag == "max" {
			return MsgTitleTooLong
		}
		return MsgTitleRequired
	case "Description":
		return MsgDescriptionTooLong
	case "Priority", "Category":
		return MsgInvalidEnum
	case "DueDate":
		return MsgDueDateInPast
	default:
		return "invalid " + strings.ToLower(field)
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultCategory = "general"
	secondsPerDay   = 24 * 60 * 60
)

var ErrInvalidTask = errors.New("invalid task")

// clock returns the current time at the second precision used on disk.
var clock = func() time.Time {
	return time.Unix(time.Now().Unix(), 0)
}

type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

const DefaultPriority = PriorityMedium

func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// Task is a single to-do item. The zero ID means it has not been persisted yet.
type Task struct {
	id          int
	title       string
	description string
	category    string
	completed   bool
	priority    Priority
	createdAt   time.Time
	updatedAt   time.Time
	dueDate     *time.Time
}

type TaskOption func(*Task)

func WithDescription(description string) TaskOption {
	return func(t *Task) {
		t.description = description
	}
}

// WithCategory ignores an empty category.
func WithCategory(category string) TaskOption {
	return func(t *Task) {
		if category != "" {
			t.category = category
		}
	}
}

// WithPriority follows SetPriority and keeps the default for out of range values.
func WithPriority(p Priority) TaskOption {
	return func(t *Task) {
		if p.Valid() {
			t.priority = p
		}
	}
}

func WithDueDate(due time.Time) TaskOption {
	return func(t *Task) {
		d := due
		t.dueDate = &d
	}
}

func NewTask(title string, opts ...TaskOption) (Task, error) {
	if strings.TrimSpace(title) == "" {
		return Task{}, fmt.Errorf("provide required field 'title': %w", ErrInvalidTask)
	}

	now := clock()
	t := Task{
		title:     title,
		category:  DefaultCategory,
		priority:  DefaultPriority,
		createdAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t, nil
}

func (t Task) ID() int {
	return t.id
}

func (t Task) Title() string {
	return t.title
}

func (t Task) Description() string {
	return t.description
}

func (t Task) Category() string {
	return t.category
}

func (t Task) Completed() bool {
	return t.completed
}

func (t Task) Priority() Priority {
	return t.priority
}

func (t Task) CreatedAt() time.Time {
	return t.createdAt
}

func (t Task) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t Task) IsPersisted() bool {
	return t.id != 0
}

func (t Task) HasDueDate() bool {
	return t.dueDate != nil
}

// DueDate reports the deadline and whether one is set.
func (t Task) DueDate() (time.Time, bool) {
	if t.dueDate == nil {
		return time.Time{}, false
	}
	return *t.dueDate, true
}

func (t *Task) SetTitle(title string) {
	t.title = title
	t.touch()
}

func (t *Task) SetDescription(description string) {
	t.description = description
	t.touch()
}

func (t *Task) SetCategory(category string) {
	t.category = category
	t.touch()
}

func (t *Task) SetCompleted(completed bool) {
	t.completed = completed
	t.touch()
}

func (t *Task) ToggleCompleted() {
	t.SetCompleted(!t.completed)
}

// SetPriority silently ignores values outside low..high.
func (t *Task) SetPriority(p Priority) {
	if !p.Valid() {
		return
	}
	t.priority = p
	t.touch()
}

func (t *Task) SetDueDate(due time.Time) {
	d := due
	t.dueDate = &d
	t.touch()
}

func (t *Task) ClearDueDate() {
	t.dueDate = nil
	t.touch()
}

func (t *Task) touch() {
	t.updatedAt = clock()
	if t.updatedAt.Before(t.createdAt) {
		t.updatedAt = t.createdAt
	}
}

func (t Task) IsOverdue() bool {
	return t.IsOverdueAt(time.Now())
}

func (t Task) IsOverdueAt(now time.Time) bool {
	if t.dueDate == nil || t.completed {
		return false
	}
	return now.After(*t.dueDate)
}

// DaysUntilDue is negative once overdue and 0 without a due date.
func (t Task) DaysUntilDue() int {
	return t.DaysUntilDueAt(time.Now())
}

func (t Task) DaysUntilDueAt(now time.Time) int {
	if t.dueDate == nil {
		return 0
	}
	secs := t.dueDate.Unix() - now.Unix()
	days := secs / secondsPerDay
	if secs%secondsPerDay != 0 && secs < 0 {
		days--
	}
	return int(days)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.title) == "" {
		return fmt.Errorf("provide required field 'title': %w", ErrInvalidTask)
	}
	if !t.priority.Valid() {
		return fmt.Errorf("priority %d out of range: %w", t.priority, ErrInvalidTask)
	}
	return nil
}

// Record is the persisted form of a Task.
type Record struct {
	ID          int
	Title       string
	Description string
	Category    string
	Completed   bool
	Priority    Priority
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DueDate     *time.Time
}

func (t Task) Record() Record {
	r := Record{
		ID:          t.id,
		Title:       t.title,
		Description: t.description,
		Category:    t.category,
		Completed:   t.completed,
		Priority:    t.priority,
		CreatedAt:   t.createdAt,
		UpdatedAt:   t.updatedAt,
	}
	if t.dueDate != nil {
		d := *t.dueDate
		r.DueDate = &d
	}
	return r
}

// TaskFromRecord rebuilds a Task as stored, without validation or timestamp changes.
func TaskFromRecord(r Record) Task {
	t := Task{
		id:          r.ID,
		title:       r.Title,
		description: r.Description,
		category:    r.Category,
		completed:   r.Completed,
		priority:    r.Priority,
		createdAt:   r.CreatedAt,
		updatedAt:   r.UpdatedAt,
	}
	if r.DueDate != nil {
		d := *r.DueDate
		t.dueDate = &d
	}
	return t
}

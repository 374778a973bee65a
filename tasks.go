package todo

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
	ErrClosed   = errors.New("store closed")
)

// TaskRepo is the contract front-ends drive. Reads on a closed repo return
// empty results; writes return ErrClosed.
type TaskRepo interface {
	Create(ctx context.Context, task *Task) error
	GetAll(ctx context.Context) ([]Task, error)
	GetByCategory(ctx context.Context, category string) ([]Task, error)
	GetByID(ctx context.Context, id int) (Task, error)
	Update(ctx context.Context, task Task) error
	Delete(ctx context.Context, id int) error
	GetAllCategories(ctx context.Context) ([]string, error)
	ToggleCompleted(ctx context.Context, id int) (Task, error)
	// Edit applies fn to the stored task and saves the result as one
	// read-modify-write.
	Edit(ctx context.Context, id int, fn func(*Task)) (Task, error)
	Count(ctx context.Context) (int, error)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/benjamonnguyen/todo"
)

const (
	SelectAll   = "SELECT id, title, description, category, completed, created_at, updated_at, due_date, priority FROM todos"
	newestFirst = " ORDER BY created_at DESC, id DESC"
)

type taskEntity struct {
	ID          int64
	Title       string
	Description sql.NullString
	Category    sql.NullString
	Completed   int
	CreatedAt   int64
	UpdatedAt   int64
	DueDate     sql.NullInt64
	Priority    int
}

func (s *Store) Create(ctx context.Context, task *todo.Task) error {
	if task == nil {
		return fmt.Errorf("provide task: %w", todo.ErrInvalidTask)
	}
	if !s.IsOpen() {
		s.l.Warn("create on closed store", "title", task.Title())
		return todo.ErrClosed
	}
	if task.IsPersisted() {
		return fmt.Errorf("task already has id %d: %w", task.ID(), todo.ErrInvalidTask)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	rec := task.Record()
	e := mapToTaskEntity(rec)
	args := []any{
		e.Title,
		e.Description,
		e.Category,
		e.Completed,
		e.CreatedAt,
		e.UpdatedAt,
		e.DueDate,
		e.Priority,
	}
	query := "INSERT INTO todos (title, description, category, completed, created_at, updated_at, due_date, priority) VALUES " + generateParameters(len(args))
	s.l.Debug("creating task", "query", query, "args", args)
	res, err := s.dbGetter(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		s.l.Error("failed task insert", "error", err)
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		s.l.Error("failed task insert id", "error", err)
		return err
	}
	rec.ID = int(id)
	*task = todo.TaskFromRecord(rec)
	return nil
}

// GetAll returns every task, newest first.
func (s *Store) GetAll(ctx context.Context) ([]todo.Task, error) {
	if !s.IsOpen() {
		s.l.Warn("get all on closed store")
		return []todo.Task{}, nil
	}
	return s.queryTasks(ctx, SelectAll+newestFirst)
}

// GetByCategory matches category exactly, newest first.
func (s *Store) GetByCategory(ctx context.Context, category string) ([]todo.Task, error) {
	if !s.IsOpen() {
		s.l.Warn("get by category on closed store", "category", category)
		return []todo.Task{}, nil
	}
	return s.queryTasks(ctx, SelectAll+" WHERE category = ?"+newestFirst, category)
}

func (s *Store) GetByID(ctx context.Context, id int) (todo.Task, error) {
	if !s.IsOpen() {
		return todo.Task{}, fmt.Errorf("task %d: %w: %w", id, todo.ErrNotFound, todo.ErrClosed)
	}

	query := SelectAll + " WHERE id = ?"
	s.l.Debug("getting task", "query", query, "id", id)
	row := s.dbGetter(ctx).QueryRowContext(ctx, query, id)
	task, err := extractTask(row)
	if err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			return todo.Task{}, fmt.Errorf("task %d: %w", id, err)
		}
		s.l.Error("failed task get", "id", id, "error", err)
		return todo.Task{}, err
	}
	return task, nil
}

// Update rewrites every mutable column of the row with the task's id.
// created_at and id are left alone.
func (s *Store) Update(ctx context.Context, task todo.Task) error {
	if !s.IsOpen() {
		s.l.Warn("update on closed store", "id", task.ID())
		return todo.ErrClosed
	}
	if err := task.Validate(); err != nil {
		return err
	}

	e := mapToTaskEntity(task.Record())
	query := "UPDATE todos SET title = ?, description = ?, category = ?, completed = ?, updated_at = ?, due_date = ?, priority = ? WHERE id = ?"
	args := []any{
		e.Title,
		e.Description,
		e.Category,
		e.Completed,
		e.UpdatedAt,
		e.DueDate,
		e.Priority,
		e.ID,
	}
	s.l.Debug("updating task", "query", query, "args", args)
	res, err := s.dbGetter(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		s.l.Error("failed task update", "id", task.ID(), "error", err)
		return err
	}
	return s.expectAffected(res, task.ID())
}

func (s *Store) Delete(ctx context.Context, id int) error {
	if !s.IsOpen() {
		s.l.Warn("delete on closed store", "id", id)
		return todo.ErrClosed
	}

	query := "DELETE FROM todos WHERE id = ?"
	s.l.Debug("deleting task", "query", query, "id", id)
	res, err := s.dbGetter(ctx).ExecContext(ctx, query, id)
	if err != nil {
		s.l.Error("failed task delete", "id", id, "error", err)
		return err
	}
	return s.expectAffected(res, id)
}

// GetAllCategories returns the distinct non-empty categories in
// alphabetical order.
func (s *Store) GetAllCategories(ctx context.Context) ([]string, error) {
	if !s.IsOpen() {
		s.l.Warn("get categories on closed store")
		return []string{}, nil
	}

	query := "SELECT DISTINCT category FROM todos WHERE category IS NOT NULL AND category != '' ORDER BY category"
	s.l.Debug("getting categories", "query", query)
	rows, err := s.dbGetter(ctx).QueryContext(ctx, query)
	if err != nil {
		s.l.Error("failed categories query", "error", err)
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	categories := []string{}
	for rows.Next() {
		var category sql.NullString
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		if !category.Valid || category.String == "" {
			continue
		}
		categories = append(categories, category.String)
	}
	if err := rows.Err(); err != nil {
		s.l.Error("failed categories scan", "error", err)
		return nil, err
	}
	return categories, nil
}

// ToggleCompleted flips the completed flag of one task in a single transaction
// and returns the stored result.
func (s *Store) ToggleCompleted(ctx context.Context, id int) (todo.Task, error) {
	return s.Edit(ctx, id, (*todo.Task).ToggleCompleted)
}

// Edit reads the task, applies fn and writes it back inside one transaction,
// so edits made from stale copies cannot overwrite each other.
func (s *Store) Edit(ctx context.Context, id int, fn func(*todo.Task)) (todo.Task, error) {
	if !s.IsOpen() {
		s.l.Warn("edit on closed store", "id", id)
		return todo.Task{}, todo.ErrClosed
	}

	var edited todo.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		task, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}
		fn(&task)
		if err := s.Update(ctx, task); err != nil {
			return err
		}
		edited = task
		return nil
	})
	if err != nil {
		return todo.Task{}, err
	}
	return edited, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	if !s.IsOpen() {
		return 0, nil
	}

	var n int
	if err := s.dbGetter(ctx).QueryRowContext(ctx, "SELECT COUNT(*) FROM todos").Scan(&n); err != nil {
		s.l.Error("failed count", "error", err)
		return 0, err
	}
	return n, nil
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...any) ([]todo.Task, error) {
	s.l.Debug("getting tasks", "query", query, "args", args)
	rows, err := s.dbGetter(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		s.l.Error("failed tasks query", "error", err)
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	tasks, err := extractTasks(rows)
	if err != nil {
		s.l.Error("failed tasks scan", "error", err)
		return nil, err
	}
	return tasks, nil
}

func (s *Store) expectAffected(res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %d: %w", id, todo.ErrNotFound)
	}
	return nil
}

func extractTasks(rows *sql.Rows) ([]todo.Task, error) {
	tasks := []todo.Task{}
	for rows.Next() {
		task, err := extractTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func extractTask(s scannable) (todo.Task, error) {
	var e taskEntity
	if err := s.Scan(&e.ID, &e.Title, &e.Description, &e.Category, &e.Completed, &e.CreatedAt, &e.UpdatedAt, &e.DueDate, &e.Priority); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return todo.Task{}, todo.ErrNotFound
		}
		return todo.Task{}, err
	}

	return todo.TaskFromRecord(mapToRecord(e)), nil
}

func mapToTaskEntity(r todo.Record) taskEntity {
	e := taskEntity{
		ID:          int64(r.ID),
		Title:       r.Title,
		Description: sql.NullString{Valid: true, String: r.Description},
		Category:    sql.NullString{Valid: true, String: r.Category},
		Completed:   boolToInt(r.Completed),
		CreatedAt:   r.CreatedAt.Unix(),
		UpdatedAt:   r.UpdatedAt.Unix(),
		Priority:    int(r.Priority),
	}
	if r.DueDate != nil {
		e.DueDate = sql.NullInt64{
			Valid: true,
			Int64: r.DueDate.Unix(),
		}
	}
	return e
}

func mapToRecord(e taskEntity) todo.Record {
	category := todo.DefaultCategory
	if e.Category.Valid {
		category = e.Category.String
	}

	var dueDate *time.Time
	if e.DueDate.Valid {
		d := time.Unix(e.DueDate.Int64, 0).Local()
		dueDate = &d
	}

	return todo.Record{
		ID:          int(e.ID),
		Title:       e.Title,
		Description: e.Description.String,
		Category:    category,
		Completed:   e.Completed != 0,
		Priority:    todo.Priority(e.Priority),
		CreatedAt:   time.Unix(e.CreatedAt, 0).Local(),
		UpdatedAt:   time.Unix(e.UpdatedAt, 0).Local(),
		DueDate:     dueDate,
	}
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tasks_api/internal/db"
	"tasks_api/internal/domain"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteTaskRepository stores tasks in an embedded sqlite database.
type SQLiteTaskRepository struct {
	db *sql.DB
}

func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

func (r *SQLiteTaskRepository) FindAll(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title FROM tasks ORDER BY rowid`)
	if err != nil {
		return nil, classifySQLite("find all tasks", err)
	}
	defer rows.Close()

	res := []domain.Task{}
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classifySQLite("find all tasks", err)
	}
	return res, nil
}

func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id string) (domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRowContext(ctx, `SELECT id, title FROM tasks WHERE id = ?`, id).Scan(&t.ID, &t.Title)
	if err != nil {
		return domain.Task{}, classifySQLite("find task "+id, err)
	}
	return t, nil
}

func (r *SQLiteTaskRepository) Save(ctx context.Context, task domain.Task) (domain.Task, error) {
	task = task.WithDerivedID()
	err := db.WithSQLTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO tasks (id, title) VALUES (?, ?)`, task.ID, task.Title)
		return err
	})
	if err != nil {
		return domain.Task{}, classifySQLite("save task "+task.ID, err)
	}
	return task, nil
}

func (r *SQLiteTaskRepository) Update(ctx context.Context, id string, task domain.Task) (domain.Task, error) {
	task.ID = id
	err := db.WithSQLTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE tasks SET title = ? WHERE id = ?`, task.Title, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrTaskNotFound
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, classifySQLite("update task "+id, err)
	}
	return task, nil
}

func (r *SQLiteTaskRepository) DeleteByID(ctx context.Context, id string) error {
	err := db.WithSQLTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return classifySQLite("delete task "+id, err)
	}
	return nil
}

func (r *SQLiteTaskRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteTaskRepository) Close() {
	_ = r.db.Close()
}

func classifySQLite(op string, err error) error {
	if errors.Is(err, domain.ErrTaskNotFound) || errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrTaskNotFound)
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		// extended codes keep the primary code in the low byte
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			return fmt.Errorf("%s: %w", op, domain.ErrTaskConflict)
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_CANTOPEN:
			return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
		}
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"tasks_api/internal/domain"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jTaskRepository stores tasks as (:Task {id, title}) nodes.
type Neo4jTaskRepository struct {
	driver neo4j.DriverWithContext
}

func NewNeo4jTaskRepository(driver neo4j.DriverWithContext) *Neo4jTaskRepository {
	return &Neo4jTaskRepository{driver: driver}
}

func (r *Neo4jTaskRepository) FindAll(ctx context.Context) ([]domain.Task, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (t:Task) RETURN t.id AS id, t.title AS title`, nil)
		if err != nil {
			return nil, err
		}

		tasks := []domain.Task{}
		for res.Next(ctx) {
			tasks = append(tasks, taskFromRecord(res.Record()))
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return tasks, nil
	})
	if err != nil {
		return nil, classifyNeo4j("find all tasks", err)
	}
	return result.([]domain.Task), nil
}

func (r *Neo4jTaskRepository) FindByID(ctx context.Context, id string) (domain.Task, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (t:Task {id: $id}) RETURN t.id AS id, t.title AS title`,
			map[string]any{"id": id},
		)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			return taskFromRecord(res.Record()), nil
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrTaskNotFound
	})
	if err != nil {
		return domain.Task{}, classifyNeo4j("find task "+id, err)
	}
	return result.(domain.Task), nil
}

func (r *Neo4jTaskRepository) Save(ctx context.Context, task domain.Task) (domain.Task, error) {
	task = task.WithDerivedID()

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		// duplicates are rejected by the task_id uniqueness constraint
		_, err := tx.Run(ctx,
			`CREATE (t:Task {id: $id, title: $title})`,
			map[string]any{"id": task.ID, "title": task.Title},
		)
		return nil, err
	})
	if err != nil {
		return domain.Task{}, classifyNeo4j("save task "+task.ID, err)
	}
	return task, nil
}

func (r *Neo4jTaskRepository) Update(ctx context.Context, id string, task domain.Task) (domain.Task, error) {
	task.ID = id

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (t:Task {id: $id}) SET t.title = $title RETURN t.id`,
			map[string]any{"id": id, "title": task.Title},
		)
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			if err := res.Err(); err != nil {
				return nil, err
			}
			return nil, domain.ErrTaskNotFound
		}
		return nil, nil
	})
	if err != nil {
		return domain.Task{}, classifyNeo4j("update task "+id, err)
	}
	return task, nil
}

func (r *Neo4jTaskRepository) DeleteByID(ctx context.Context, id string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, `MATCH (t:Task {id: $id}) DETACH DELETE t`, map[string]any{"id": id})
		return nil, err
	})
	if err != nil {
		return classifyNeo4j("delete task "+id, err)
	}
	return nil
}

func (r *Neo4jTaskRepository) Ping(ctx context.Context) error {
	return r.driver.VerifyConnectivity(ctx)
}

func (r *Neo4jTaskRepository) Close() {
	_ = r.driver.Close(context.Background())
}

func taskFromRecord(record *neo4j.Record) domain.Task {
	var t domain.Task
	if v, ok := record.Get("id"); ok && v != nil {
		t.ID, _ = v.(string)
	}
	if v, ok := record.Get("title"); ok && v != nil {
		t.Title, _ = v.(string)
	}
	return t
}

const neo4jConstraintViolation = "Neo.ClientError.Schema.ConstraintValidationFailed"

func classifyNeo4j(op string, err error) error {
	var neoErr *neo4j.Neo4jError
	var connErr *neo4j.ConnectivityError
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return fmt.Errorf("%s: %w", op, domain.ErrTaskNotFound)
	case errors.As(err, &neoErr) && neoErr.Code == neo4jConstraintViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrTaskConflict)
	case errors.As(err, &connErr), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

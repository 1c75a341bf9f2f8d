// Command task_smoke saves a task through the configured store, reads it back
// and optionally removes it again.
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"tasks_api/internal/config"
	"tasks_api/internal/domain"
	"tasks_api/internal/logger"
	"tasks_api/internal/repository"
)

func main() {
	title := flag.String("title", "Buy milk", "title of the smoke task")
	keep := flag.Bool("keep", false, "leave the task in the store")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("open store failed", "error", err)
	}
	defer store.Close()

	id := domain.TaskID(*title)

	// reuse an existing task with the same title
	task, err := store.FindByID(ctx, id)
	switch {
	case err == nil:
		logger.Info("task already exists", "id", task.ID)
	case errors.Is(err, domain.ErrTaskNotFound):
		task, err = store.Save(ctx, domain.Task{Title: *title})
		if err != nil {
			logger.Fatal("save failed", "error", err)
		}
		logger.Info("task created", "id", task.ID)
	default:
		logger.Fatal("lookup failed", "error", err)
	}

	got, err := store.FindByID(ctx, task.ID)
	if err != nil {
		logger.Fatal("read back failed", "error", err)
	}
	if got.Title != *title {
		logger.Fatal("title mismatch", "want", *title, "got", got.Title)
	}
	logger.Info("fetched task", "id", got.ID, "title", got.Title)

	if *keep {
		return
	}
	if err := store.DeleteByID(ctx, task.ID); err != nil {
		logger.Fatal("delete failed", "error", err)
	}
	if _, err := store.FindByID(ctx, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		logger.Fatal("task still present after delete", "error", err)
	}
	logger.Info("task removed", "id", task.ID)
}

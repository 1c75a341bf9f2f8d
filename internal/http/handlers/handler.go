package handlers

import (
	"tasks_api/internal/repository"
)

// Handler bundles every endpoint group served by the API.
type Handler struct {
	Tasks  *TaskHandler
	Health *HealthHandler
}

func NewHandler(store repository.TaskStore, driver, version string) *Handler {
	return &Handler{
		Tasks:  NewTaskHandler(store),
		Health: NewHealthHandler(store, driver, version),
	}
}

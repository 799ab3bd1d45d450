package services

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"task-manager/internal/aggregate"
	"task-manager/internal/config"
	"task-manager/internal/repository"
	"task-manager/internal/store"
	"task-manager/internal/validation"
)

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	Folders  FolderService
	Tasks    TaskService
	Agenda   AgendaService
	Location *time.Location
}

// NewServiceContainer wires the services on top of a document store
func NewServiceContainer(s store.Store, cfg *config.Config, logger zerolog.Logger) (*ServiceContainer, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	opts := []repository.Option{
		repository.WithFanOutLimit(cfg.Store.FanOutLimit),
		repository.WithLocation(loc),
	}
	folders := repository.NewFolderRepository(s, opts...)
	tasks := repository.NewTaskRepository(s, opts...)
	engine := aggregate.NewEngine(folders, tasks,
		aggregate.WithLocation(loc),
		aggregate.WithFanOutLimit(cfg.Store.FanOutLimit),
	)

	taskValidator := validation.NewTaskValidatorWithConfig(cfg)

	return &ServiceContainer{
		Folders:  NewFolderService(folders, validation.NewFolderValidatorWithConfig(cfg), logger.With().Str("service", "folders").Logger()),
		Tasks:    NewTaskService(tasks, taskValidator, logger.With().Str("service", "tasks").Logger(), time.Now),
		Agenda:   NewAgendaService(engine, taskValidator, logger.With().Str("service", "agenda").Logger(), cfg.Tasks.NearingDueDays),
		Location: loc,
	}, nil
}

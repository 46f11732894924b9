package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/R3E-Network/algorithm_service/internal/app/services/algorithms"
	"github.com/R3E-Network/algorithm_service/internal/app/services/users"
	"github.com/R3E-Network/algorithm_service/internal/app/storage"
	"github.com/R3E-Network/algorithm_service/internal/app/storage/memory"
	"github.com/R3E-Network/algorithm_service/internal/app/system"
	"github.com/R3E-Network/algorithm_service/internal/logging"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Users storage.UserStore
}

// Application ties domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     logrus.FieldLogger

	Algorithms *algorithms.Service
	Users      *users.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log logrus.FieldLogger) (*Application, error) {
	if log == nil {
		log = logging.NewDiscard()
	}
	if stores.Users == nil {
		stores.Users = memory.New()
	}

	manager := system.NewManager()
	for _, name := range []string{"algorithms", "users"} {
		if err := manager.Register(system.NoopService{ServiceName: name}); err != nil {
			return nil, fmt.Errorf("register %s service: %w", name, err)
		}
	}

	return &Application{
		manager:    manager,
		log:        log,
		Algorithms: algorithms.New(log),
		Users:      users.New(stores.Users, log),
	}, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	if err := a.manager.Start(ctx); err != nil {
		return err
	}
	a.log.WithField("services", a.manager.Names()).Info("application started")
	return nil
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}

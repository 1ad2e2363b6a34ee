// Package startup starts the service's background dependencies in order and
// stops them in reverse, retrying the whole sequence with fibonacci backoff.
package startup

import (
	"context"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
)

// Dependency is a startable background component
type Dependency interface {
	GetName() string
	DependsOn() []string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type status int

const (
	statusPending status = iota
	statusStarted
	statusStopped
	statusFailed
)

type Startup struct {
	dependencies map[string]Dependency
	order        []string
	logger       ectologger.Logger
	statuses     map[string]status
	maxAttempts  int
}

func NewStartup(logger ectologger.Logger, maxAttempts int) *Startup {
	return &Startup{
		logger:       logger,
		dependencies: make(map[string]Dependency),
		statuses:     make(map[string]status),
		maxAttempts:  maxAttempts,
	}
}

func (s *Startup) AddDependency(dependency Dependency) {
	s.dependencies[dependency.GetName()] = dependency
	s.order = append(s.order, dependency.GetName())
}

func (s *Startup) Start(ctx context.Context) error {
	var lastErr error

	a, b := 1, 1
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		s.logger.WithField("attempt", attempt).Infof("Beginning startup attempt %d", attempt)

		success := true
		for _, name := range s.order {
			if err := s.startDependency(ctx, s.dependencies[name]); err != nil {
				s.logger.WithError(err).Errorf("Startup dependency '%s' attempt %d failed", name, attempt)
				lastErr = err
				success = false
				break
			}
		}

		if success {
			return nil
		}

		if attempt >= s.maxAttempts {
			return fmt.Errorf("startup failed after %d attempts: %w", attempt, lastErr)
		}

		s.logger.Infof("Retrying in %d seconds (attempt %d/%d)", a, attempt, s.maxAttempts)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(a) * time.Second):
		}
		a, b = b, a+b
	}

	return lastErr
}

func (s *Startup) startDependency(ctx context.Context, dependency Dependency) error {
	if s.statuses[dependency.GetName()] == statusStarted {
		return nil
	}

	for _, dependencyName := range dependency.DependsOn() {
		if s.statuses[dependencyName] != statusStarted {
			if err := s.startDependency(ctx, s.dependencies[dependencyName]); err != nil {
				return err
			}
		}
	}

	s.logger.WithField("dependency", dependency.GetName()).Infof("Starting dependency '%s'", dependency.GetName())
	s.statuses[dependency.GetName()] = statusPending
	if err := dependency.Start(ctx); err != nil {
		s.statuses[dependency.GetName()] = statusFailed
		return err
	}
	s.statuses[dependency.GetName()] = statusStarted
	return nil
}

// Stop stops started dependencies in reverse registration order
func (s *Startup) Stop(ctx context.Context) error {
	for i := len(s.order) - 1; i >= 0; i-- {
		name := s.order[i]
		if s.statuses[name] != statusStarted {
			continue
		}
		dependency := s.dependencies[name]
		s.logger.WithField("dependency", name).Infof("Stopping dependency '%s'", name)
		if err := dependency.Stop(ctx); err != nil {
			s.logger.WithError(err).Errorf("Failed to stop dependency '%s'", name)
			return err
		}
		s.statuses[name] = statusStopped
	}
	return nil
}

// Func wraps start/stop funcs as a Dependency for components that don't
// implement the interface themselves.
type Func struct {
	Name      string
	Needs     []string
	StartFunc func(ctx context.Context) error
	StopFunc  func(ctx context.Context) error
}

func (f Func) GetName() string { return f.Name }

func (f Func) DependsOn() []string { return f.Needs }

func (f Func) Start(ctx context.Context) error {
	if f.StartFunc == nil {
		return nil
	}
	return f.StartFunc(ctx)
}

func (f Func) Stop(ctx context.Context) error {
	if f.StopFunc == nil {
		return nil
	}
	return f.StopFunc(ctx)
}

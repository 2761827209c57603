package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mcompose/mcc/internal/config"
	"github.com/mcompose/mcc/internal/core/domain"
)

// Orchestrator sequences the reconcilers per named operation and
// enforces the container state machine: it checks a freshly derived
// state before every transition instead of trusting prior outcomes.
type Orchestrator struct {
	containers *Containers
	files      *Files
	console    *Console
}

func NewOrchestrator(containers *Containers, files *Files, console *Console) *Orchestrator {
	return &Orchestrator{containers: containers, files: files, console: console}
}

// Up converges the instance to running: creates the container when it
// does not exist, then starts it when it is stopped.
func (o *Orchestrator) Up(ctx context.Context, cfg *config.Config) error {
	state, err := o.containers.Status(ctx, cfg)
	if err != nil {
		return err
	}
	if state.Kind == domain.StateNotFound {
		if err := o.createInstance(ctx, cfg); err != nil {
			return err
		}
		state = domain.Stopped()
	}
	if state.Kind == domain.StateStopped {
		log.Info().Str("name", cfg.Name).Msg("starting server")
		return o.containers.Start(ctx, cfg)
	}
	log.Info().Str("name", cfg.Name).Stringer("state", state).Msg("server is already up")
	return nil
}

// Down converges the instance to absent: stops the container when it
// is running, then destroys it when it is stopped.
func (o *Orchestrator) Down(ctx context.Context, cfg *config.Config) error {
	state, err := o.containers.Status(ctx, cfg)
	if err != nil {
		return err
	}
	if state.Kind == domain.StateRunning {
		log.Info().Str("name", cfg.Name).Msg("stopping server")
		if err := o.containers.Stop(ctx, cfg); err != nil {
			return err
		}
		state = domain.Stopped()
	}
	if state.Kind == domain.StateStopped {
		log.Info().Str("name", cfg.Name).Msg("destroying server container")
		return o.containers.Delete(ctx, cfg)
	}
	log.Info().Str("name", cfg.Name).Stringer("state", state).Msg("server is already down")
	return nil
}

// Create prepares the data directory and creates the container. The
// container must not exist yet.
func (o *Orchestrator) Create(ctx context.Context, cfg *config.Config) error {
	if err := o.requireState(ctx, cfg, domain.StateNotFound, "create"); err != nil {
		return err
	}
	return o.createInstance(ctx, cfg)
}

// Destroy removes the container. It must be stopped first.
func (o *Orchestrator) Destroy(ctx context.Context, cfg *config.Config) error {
	if err := o.requireState(ctx, cfg, domain.StateStopped, "destroy"); err != nil {
		return err
	}
	log.Info().Str("name", cfg.Name).Msg("destroying server container")
	return o.containers.Delete(ctx, cfg)
}

// Start starts a stopped container.
func (o *Orchestrator) Start(ctx context.Context, cfg *config.Config) error {
	if err := o.requireState(ctx, cfg, domain.StateStopped, "start"); err != nil {
		return err
	}
	log.Info().Str("name", cfg.Name).Msg("starting server")
	return o.containers.Start(ctx, cfg)
}

// Stop stops a running container.
func (o *Orchestrator) Stop(ctx context.Context, cfg *config.Config) error {
	if err := o.requireState(ctx, cfg, domain.StateRunning, "stop"); err != nil {
		return err
	}
	log.Info().Str("name", cfg.Name).Msg("stopping server")
	return o.containers.Stop(ctx, cfg)
}

// Status derives the current container state from the runtime.
func (o *Orchestrator) Status(ctx context.Context, cfg *config.Config) (domain.ContainerState, error) {
	return o.containers.Status(ctx, cfg)
}

// Console opens an interactive console session. The server must be
// fully running, not merely started.
func (o *Orchestrator) Console(ctx context.Context, cfg *config.Config) error {
	state, err := o.containers.Status(ctx, cfg)
	if err != nil {
		return err
	}
	if !state.Ready() {
		return fmt.Errorf("%w: cannot open a console while the server is %s", domain.ErrStateConflict, state)
	}
	host, port, err := o.containers.ConsoleAddress(ctx, cfg)
	if err != nil {
		return err
	}
	return o.console.RunInteractive(cfg, host, port)
}

// SyncDatapacks reconciles the installed datapacks and, when the
// server is fully running, tells it to reload. A failed notification
// does not undo a completed sync, so it is logged rather than fatal.
func (o *Orchestrator) SyncDatapacks(ctx context.Context, cfg *config.Config) error {
	if err := o.files.EnsureDataDir(); err != nil {
		return err
	}
	if err := o.files.SyncDatapacks(cfg); err != nil {
		return err
	}

	state, err := o.containers.Status(ctx, cfg)
	if err != nil {
		return err
	}
	if !state.Ready() {
		return nil
	}
	host, port, err := o.containers.ConsoleAddress(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("datapacks synced but the server could not be notified")
		return nil
	}
	responses, err := o.console.RunCommands(host, port, []string{
		"reload",
		"say Datapacks were synchronized",
	})
	if err != nil {
		log.Warn().Err(err).Msg("datapacks synced but the server could not be notified")
		return nil
	}
	for _, response := range responses {
		if len(response) > 0 {
			log.Debug().Str("response", response).Msg("server acknowledged datapack sync")
		}
	}
	return nil
}

func (o *Orchestrator) createInstance(ctx context.Context, cfg *config.Config) error {
	if err := o.files.EnsureDataDir(); err != nil {
		return err
	}
	if err := o.files.WriteServerProperties(cfg); err != nil {
		return err
	}
	if err := o.files.SyncDatapacks(cfg); err != nil {
		return err
	}
	dataPath, err := o.files.DataPath()
	if err != nil {
		return fmt.Errorf("failed to resolve the data directory: %w", err)
	}
	log.Info().Str("name", cfg.Name).Msg("creating server container")
	return o.containers.Create(ctx, cfg, dataPath)
}

// requireState re-derives the container state and rejects the
// operation when it does not match.
func (o *Orchestrator) requireState(ctx context.Context, cfg *config.Config, want domain.StateKind, op string) error {
	state, err := o.containers.Status(ctx, cfg)
	if err != nil {
		return err
	}
	if state.Kind != want {
		return fmt.Errorf("%w: cannot %s while the server is %s", domain.ErrStateConflict, op, state)
	}
	return nil
}

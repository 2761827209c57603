package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mcompose/mcc/internal/config"
	"github.com/mcompose/mcc/internal/core/domain"
	"github.com/mcompose/mcc/internal/core/ports"
)

const (
	imageName = "itzg/minecraft-server"
	imageTag  = "latest"

	// gamePort is the fixed in-container game port; the host binding
	// comes from the config.
	gamePort = "25565/tcp"
	// consolePort is the fixed in-container RCON port, published only
	// on the loopback interface with a runtime-assigned host port.
	consolePort = "25575/tcp"
)

// Containers translates a Config into runtime operations and runtime
// inspection results into a ContainerState. It performs no transition
// guarding itself; the orchestrator checks state before acting.
type Containers struct {
	runtime ports.ContainerRuntime
}

func NewContainers(runtime ports.ContainerRuntime) *Containers {
	return &Containers{runtime: runtime}
}

// Status inspects the named container and maps the runtime's report to
// a ContainerState. Every phase the runtime can report is covered; only
// genuinely absent phase data falls back to an unknown state.
func (c *Containers) Status(ctx context.Context, cfg *config.Config) (domain.ContainerState, error) {
	insp, found, err := c.runtime.InspectContainer(ctx, cfg.Name)
	if err != nil {
		return domain.ContainerState{}, fmt.Errorf("failed to inspect container: %w", err)
	}
	if !found {
		return domain.NotFound(), nil
	}
	if insp.State == nil {
		return domain.Unknown(), nil
	}

	switch insp.State.Status {
	case "created", "", "exited", "dead", "paused":
		return domain.Stopped(), nil
	case "running":
		return domain.Running(gameStateFromHealth(insp.State.Health)), nil
	case "restarting":
		return domain.Running(domain.GameUnknown), nil
	case "removing":
		// Mid-removal counts as already gone so destructive retries
		// stay idempotent.
		return domain.NotFound(), nil
	default:
		log.Debug().Str("status", insp.State.Status).Msg("runtime reported an unrecognized container phase")
		return domain.Unknown(), nil
	}
}

// gameStateFromHealth refines a running container by its health probe.
// Only a healthy probe confirms that the game process itself accepts
// connections.
func gameStateFromHealth(health string) domain.GameState {
	switch health {
	case "starting":
		return domain.GameStarting
	case "healthy":
		return domain.GameRunning
	default:
		return domain.GameUnknown
	}
}

// Create pulls the server image and creates the container: game port
// published per config, console port bound to loopback only, data
// directory mounted at /data, restart policy always. The caller must
// have confirmed the container does not exist.
func (c *Containers) Create(ctx context.Context, cfg *config.Config, dataPath string) error {
	env := []string{
		"EULA=true",
		fmt.Sprintf("VERSION=%s", cfg.Server.Version),
	}
	if cfg.Server.Memory != "" {
		env = append(env, fmt.Sprintf("MEMORY=%s", cfg.Server.Memory))
	}
	env = append(env, "TYPE=VANILLA")

	if err := c.runtime.PullImage(ctx, imageName, imageTag); err != nil {
		return fmt.Errorf("failed to pull image: %w", err)
	}

	opts := ports.CreateOptions{
		Image: fmt.Sprintf("%s:%s", imageName, imageTag),
		Env:   env,
		Binds: []string{fmt.Sprintf("%s:/data", dataPath)},
		PortBindings: map[string][]domain.PortBinding{
			gamePort: {
				{HostIP: cfg.Host, HostPort: fmt.Sprintf("%d", cfg.Port)},
			},
			consolePort: {
				{HostIP: "127.0.0.1"},
			},
		},
		RestartPolicy: "always",
	}
	if err := c.runtime.CreateContainer(ctx, cfg.Name, opts); err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}
	return nil
}

func (c *Containers) Start(ctx context.Context, cfg *config.Config) error {
	return c.runtime.StartContainer(ctx, cfg.Name)
}

func (c *Containers) Stop(ctx context.Context, cfg *config.Config) error {
	return c.runtime.StopContainer(ctx, cfg.Name)
}

func (c *Containers) Delete(ctx context.Context, cfg *config.Config) error {
	return c.runtime.RemoveContainer(ctx, cfg.Name)
}

// ConsoleAddress extracts the single published host binding for the
// console port. Zero or multiple bindings fail rather than guess.
func (c *Containers) ConsoleAddress(ctx context.Context, cfg *config.Config) (host string, port string, err error) {
	insp, found, err := c.runtime.InspectContainer(ctx, cfg.Name)
	if err != nil {
		return "", "", fmt.Errorf("failed to inspect container: %w", err)
	}
	if !found {
		return "", "", fmt.Errorf("%w: container %q does not exist", domain.ErrNoConsoleBinding, cfg.Name)
	}
	bindings := insp.Ports[consolePort]
	if len(bindings) != 1 {
		return "", "", fmt.Errorf("%w: found %d bindings for %s", domain.ErrNoConsoleBinding, len(bindings), consolePort)
	}
	return bindings[0].HostIP, bindings[0].HostPort, nil
}

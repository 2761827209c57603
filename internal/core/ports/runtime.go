package ports

import (
	"context"

	"github.com/mcompose/mcc/internal/core/domain"
)

// CreateOptions describes the container to create, kept free of any
// runtime-specific types so the core never imports the Docker SDK.
type CreateOptions struct {
	Image string
	Env   []string
	// Binds are host:container mount pairs.
	Binds []string
	// PortBindings maps a container port spec ("25565/tcp") to the host
	// bindings to publish for it.
	PortBindings map[string][]domain.PortBinding
	// RestartPolicy is the runtime restart policy name, e.g. "always".
	RestartPolicy string
}

// ContainerRuntime defines the by-name container operations the core
// needs. This interface allows us to switch between Docker, Podman, or
// another runtime without changing the reconciliation logic, and to
// test it without a daemon.
type ContainerRuntime interface {
	PullImage(ctx context.Context, image string, tag string) error
	CreateContainer(ctx context.Context, name string, opts CreateOptions) error
	StartContainer(ctx context.Context, name string) error
	StopContainer(ctx context.Context, name string) error
	RemoveContainer(ctx context.Context, name string) error
	// InspectContainer reports found=false when no container with the
	// given name exists; absence is a result, not an error.
	InspectContainer(ctx context.Context, name string) (insp domain.Inspection, found bool, err error)
}

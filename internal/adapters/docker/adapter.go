package docker

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"

	"github.com/mcompose/mcc/internal/core/domain"
	"github.com/mcompose/mcc/internal/core/ports"
)

// Adapter implements ports.ContainerRuntime using the Docker SDK.
type Adapter struct {
	cli *client.Client
}

// NewAdapter creates a Docker adapter connected via the environment's
// daemon settings.
func NewAdapter() (*Adapter, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return &Adapter{cli: cli}, nil
}

// PullImage ensures the image is present locally. The pull stream has
// to be drained for the operation to complete.
func (a *Adapter) PullImage(ctx context.Context, image string, tag string) error {
	reader, err := a.cli.ImagePull(ctx, fmt.Sprintf("%s:%s", image, tag), types.ImagePullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image: %w", err)
	}
	defer reader.Close()
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("failed to read image pull progress: %w", err)
	}
	return nil
}

// CreateContainer creates a named container from runtime-agnostic
// options.
func (a *Adapter) CreateContainer(ctx context.Context, name string, opts ports.CreateOptions) error {
	portBindings := nat.PortMap{}
	exposed := nat.PortSet{}
	for portSpec, bindings := range opts.PortBindings {
		port := nat.Port(portSpec)
		exposed[port] = struct{}{}
		natBindings := make([]nat.PortBinding, 0, len(bindings))
		for _, binding := range bindings {
			natBindings = append(natBindings, nat.PortBinding{
				HostIP:   binding.HostIP,
				HostPort: binding.HostPort,
			})
		}
		portBindings[port] = natBindings
	}

	containerConfig := &container.Config{
		Image:        opts.Image,
		Env:          opts.Env,
		ExposedPorts: exposed,
	}
	hostConfig := &container.HostConfig{
		Binds:        opts.Binds,
		PortBindings: portBindings,
		RestartPolicy: container.RestartPolicy{
			Name: container.RestartPolicyMode(opts.RestartPolicy),
		},
	}

	if _, err := a.cli.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, name); err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}
	return nil
}

func (a *Adapter) StartContainer(ctx context.Context, name string) error {
	if err := a.cli.ContainerStart(ctx, name, types.ContainerStartOptions{}); err != nil {
		return fmt.Errorf("failed to start container: %w", err)
	}
	return nil
}

func (a *Adapter) StopContainer(ctx context.Context, name string) error {
	if err := a.cli.ContainerStop(ctx, name, container.StopOptions{}); err != nil {
		return fmt.Errorf("failed to stop container: %w", err)
	}
	return nil
}

func (a *Adapter) RemoveContainer(ctx context.Context, name string) error {
	if err := a.cli.ContainerRemove(ctx, name, types.ContainerRemoveOptions{}); err != nil {
		return fmt.Errorf("failed to remove container: %w", err)
	}
	return nil
}

// InspectContainer reduces the daemon's inspect response to the domain
// view. A missing container is a not-found result, not an error.
func (a *Adapter) InspectContainer(ctx context.Context, name string) (domain.Inspection, bool, error) {
	resp, err := a.cli.ContainerInspect(ctx, name)
	if err != nil {
		if client.IsErrNotFound(err) {
			return domain.Inspection{}, false, nil
		}
		return domain.Inspection{}, false, fmt.Errorf("failed to inspect container: %w", err)
	}

	insp := domain.Inspection{}
	if resp.State != nil {
		state := &domain.ProcessState{Status: resp.State.Status}
		if resp.State.Health != nil {
			state.Health = resp.State.Health.Status
		}
		insp.State = state
	}
	if resp.NetworkSettings != nil && resp.NetworkSettings.Ports != nil {
		insp.Ports = make(map[string][]domain.PortBinding, len(resp.NetworkSettings.Ports))
		for port, bindings := range resp.NetworkSettings.Ports {
			converted := make([]domain.PortBinding, 0, len(bindings))
			for _, binding := range bindings {
				converted = append(converted, domain.PortBinding{
					HostIP:   binding.HostIP,
					HostPort: binding.HostPort,
				})
			}
			insp.Ports[string(port)] = converted
		}
	}
	return insp, true, nil
}

package domain

// StateKind is the container-level half of ContainerState.
type StateKind int

const (
	// StateUnknown means the container exists but the runtime reported
	// no usable lifecycle phase for it.
	StateUnknown StateKind = iota
	// StateNotFound means no container with the instance's name exists
	// (a container mid-removal is treated as already gone).
	StateNotFound
	// StateStopped means the container exists but its process is not
	// running (created, exited, dead or paused).
	StateStopped
	// StateRunning means the container process is running; Game carries
	// the readiness of the server inside it.
	StateRunning
)

// GameState reflects the game process's own readiness signal, distinct
// from the container's lifecycle state.
type GameState int

const (
	GameUnknown GameState = iota
	GameStarting
	GameRunning
)

// ContainerState is the reconciled view of one named instance. Kind is
// always meaningful; Game is meaningful only when Kind is StateRunning.
type ContainerState struct {
	Kind StateKind
	Game GameState
}

func Unknown() ContainerState  { return ContainerState{Kind: StateUnknown} }
func NotFound() ContainerState { return ContainerState{Kind: StateNotFound} }
func Stopped() ContainerState  { return ContainerState{Kind: StateStopped} }

func Running(game GameState) ContainerState {
	return ContainerState{Kind: StateRunning, Game: game}
}

// Ready reports whether the game process itself, not just the
// container, is accepting connections.
func (s ContainerState) Ready() bool {
	return s.Kind == StateRunning && s.Game == GameRunning
}

func (s ContainerState) String() string {
	switch s.Kind {
	case StateNotFound:
		return "not found"
	case StateStopped:
		return "stopped"
	case StateRunning:
		switch s.Game {
		case GameStarting:
			return "running (starting up)"
		case GameRunning:
			return "running"
		default:
			return "running (health unknown)"
		}
	default:
		return "unknown"
	}
}

// Inspection is the runtime's report on an existing container, reduced
// to the fields this system acts on.
type Inspection struct {
	// State is nil when the runtime reported no lifecycle data at all.
	State *ProcessState
	// Ports maps a container port spec ("25575/tcp") to its published
	// host bindings.
	Ports map[string][]PortBinding
}

// ProcessState is the lifecycle phase and health probe status reported
// by the runtime.
type ProcessState struct {
	// Status is the runtime's lifecycle phase: created, running,
	// paused, restarting, removing, exited, dead, or empty.
	Status string
	// Health is the health probe status (none, starting, healthy,
	// unhealthy); empty when the runtime reported no health data.
	Health string
}

// PortBinding is one published host binding for a container port.
type PortBinding struct {
	HostIP   string
	HostPort string
}

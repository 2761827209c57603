package rcon

import (
	"fmt"
	"net"

	"github.com/gorcon/rcon"

	"github.com/mcompose/mcc/internal/core/ports"
)

// password is the well-known credential this tool writes into
// server.properties; it is not configurable at this layer.
const password = "minecraft"

// Dialer implements ports.ConsoleDialer over the Minecraft RCON
// protocol.
type Dialer struct{}

func NewDialer() Dialer {
	return Dialer{}
}

func (Dialer) Dial(host string, port string) (ports.ConsoleSession, error) {
	conn, err := rcon.Dial(net.JoinHostPort(host, port), password)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rcon at %s:%s: %w", host, port, err)
	}
	return &session{conn: conn}, nil
}

type session struct {
	conn *rcon.Conn
}

func (s *session) Execute(command string) (string, error) {
	response, err := s.conn.Execute(command)
	if err != nil {
		return "", fmt.Errorf("failed to execute rcon command: %w", err)
	}
	return response, nil
}

func (s *session) Close() error {
	return s.conn.Close()
}

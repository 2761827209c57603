package services

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/mcompose/mcc/internal/config"
	"github.com/mcompose/mcc/internal/core/ports"
)

// Console drives command/response exchanges with a running server's
// remote console.
type Console struct {
	dialer ports.ConsoleDialer
	input  ports.LineReader
}

func NewConsole(dialer ports.ConsoleDialer, input ports.LineReader) *Console {
	return &Console{dialer: dialer, input: input}
}

// RunInteractive loops reading one command line at a time, sending it
// to the server and printing any non-empty response. End of input ends
// the loop successfully; a read or send failure aborts with the error.
func (c *Console) RunInteractive(cfg *config.Config, host string, port string) error {
	log.Trace().Str("host", host).Str("port", port).Msg("establishing rcon connection")
	session, err := c.dialer.Dial(host, port)
	if err != nil {
		return fmt.Errorf("failed to connect to the server console: %w", err)
	}
	defer session.Close()

	prompt := fmt.Sprintf("[%s] > ", cfg.Name)
	for {
		line, err := c.input.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read console input: %w", err)
		}

		response, err := session.Execute(line)
		if err != nil {
			return fmt.Errorf("failed to execute console command: %w", err)
		}
		if len(response) > 0 {
			fmt.Println(response)
		}
	}
}

// RunCommands sends a fixed list of commands in order over a single
// session and returns the responses in the same order. Used for
// post-reconciliation notifications rather than a live terminal.
func (c *Console) RunCommands(host string, port string, commands []string) ([]string, error) {
	session, err := c.dialer.Dial(host, port)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the server console: %w", err)
	}
	defer session.Close()

	responses := make([]string, 0, len(commands))
	for _, command := range commands {
		response, err := session.Execute(command)
		if err != nil {
			return nil, fmt.Errorf("failed to execute console command %q: %w", command, err)
		}
		responses = append(responses, response)
	}
	return responses, nil
}

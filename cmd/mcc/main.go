package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/mcompose/mcc/internal/adapters/docker"
	"github.com/mcompose/mcc/internal/adapters/fs"
	"github.com/mcompose/mcc/internal/adapters/input"
	"github.com/mcompose/mcc/internal/adapters/rcon"
	"github.com/mcompose/mcc/internal/config"
	"github.com/mcompose/mcc/internal/core/services"
	"github.com/mcompose/mcc/internal/logging"
)

const usage = `mcc manages a single containerized Minecraft server instance.

Usage:
  mcc [flags] <command>

Commands:
  up              Create (if needed) and start the server container
  down            Stop (if needed) and destroy the server container
  create          Create the server container
  destroy         Destroy the server container
  start           Start the server container
  stop            Stop the server container
  status          Display the container status
  console         Connect an interactive console to the server
  datapacks sync  Sync datapacks to the server

Flags:
`

func main() {
	flags := pflag.NewFlagSet("mcc", pflag.ContinueOnError)
	file := flags.StringP("file", "f", "./mcc.toml", "config file to use")
	quiet := flags.BoolP("quiet", "q", false, "silence all output except errors")
	verbosity := flags.CountP("verbose", "v", "print additional output (repeatable)")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fmt.Fprintln(os.Stderr, flags.FlagUsages())
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if flags.NArg() == 0 {
		flags.Usage()
		os.Exit(1)
	}

	logging.Init(*quiet, *verbosity)

	cfg, err := config.Load(*file)
	if err != nil {
		log.Error().Err(err).Msg("unable to load config file")
		os.Exit(1)
	}

	// Relative paths in the config (data/, datapacks/) resolve against
	// the config file's directory.
	if dir := filepath.Dir(*file); dir != "" {
		log.Trace().Str("dir", dir).Msg("changing to config file directory")
		if err := os.Chdir(dir); err != nil {
			log.Error().Err(err).Msg("unable to change to config file directory")
			os.Exit(1)
		}
	}

	orchestrator, err := wire()
	if err != nil {
		log.Error().Err(err).Msg("unable to initialize")
		os.Exit(1)
	}

	if err := run(orchestrator, cfg, flags.Args()); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// wire builds the orchestrator from the production adapters.
func wire() (*services.Orchestrator, error) {
	runtime, err := docker.NewAdapter()
	if err != nil {
		return nil, err
	}

	containers := services.NewContainers(runtime)
	files := services.NewFiles(fs.NewAdapter())
	console := services.NewConsole(rcon.NewDialer(), input.NewReader())
	return services.NewOrchestrator(containers, files, console), nil
}

func run(orchestrator *services.Orchestrator, cfg *config.Config, args []string) error {
	ctx := context.Background()

	switch args[0] {
	case "up":
		return orchestrator.Up(ctx, cfg)
	case "down":
		return orchestrator.Down(ctx, cfg)
	case "create":
		return orchestrator.Create(ctx, cfg)
	case "destroy":
		return orchestrator.Destroy(ctx, cfg)
	case "start":
		return orchestrator.Start(ctx, cfg)
	case "stop":
		return orchestrator.Stop(ctx, cfg)
	case "status":
		state, err := orchestrator.Status(ctx, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", cfg.Name, state)
		return nil
	case "console":
		return orchestrator.Console(ctx, cfg)
	case "datapacks":
		if len(args) < 2 || args[1] != "sync" {
			return fmt.Errorf("usage: mcc datapacks sync")
		}
		return orchestrator.SyncDatapacks(ctx, cfg)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// Command lurkserver runs a LURK protocol dungeon server: a TCP
// listener accepting client connections, a single game-loop actor
// mutating the loaded world, and per-connection read/write pumps
// bridging the two.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/udisondev/lurkserver/internal/config"
	"github.com/udisondev/lurkserver/internal/lurk/character"
	"github.com/udisondev/lurkserver/internal/lurk/world"
	"github.com/udisondev/lurkserver/internal/lurkserver"
)

const ConfigPath = "config/lurkserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// run wires config, CLI overrides, map loading, and the server
// together. Invoked as "lurkserver <address> <port> <map_number>",
// exiting non-zero on bad arg count, bind failure, or map load
// failure.
func run(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: lurkserver <address> <port> <map_number>")
	}

	port, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", args[1], err)
	}
	mapNumber, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid map_number %q: %w", args[2], err)
	}

	cfgPath := ConfigPath
	if p := os.Getenv("LURKSERVER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.BindAddress = args[0]
	cfg.Port = port
	cfg.MapNumber = mapNumber
	if p := os.Getenv("MAP_PATH"); p != "" {
		cfg.MapPath = p
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	mapFile := filepath.Join(cfg.MapPath, fmt.Sprintf("%d.json", cfg.MapNumber))
	f, err := os.Open(mapFile)
	if err != nil {
		return fmt.Errorf("opening map file %s: %w", mapFile, err)
	}
	defer f.Close()

	w, err := world.Load(f)
	if err != nil {
		return fmt.Errorf("loading map %s: %w", mapFile, err)
	}
	slog.Info("map loaded", "path", mapFile, "rooms", len(w.RoomIDs()))

	reg := character.NewRegistry()
	srv := lurkserver.NewServer(cfg, w, reg)

	slog.Info("lurk server starting",
		"address", cfg.BindAddress, "port", cfg.Port, "map_number", cfg.MapNumber)

	return srv.Run(ctx)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

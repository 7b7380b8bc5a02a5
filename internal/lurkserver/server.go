package lurkserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/lurkserver/internal/config"
	"github.com/udisondev/lurkserver/internal/lurk/character"
	"github.com/udisondev/lurkserver/internal/lurk/world"
)

// Server accepts LURK client connections, wraps each in a Connection,
// and fans decoded events into a single GameLoop.
type Server struct {
	cfg  config.Server
	loop *GameLoop

	nextID atomic.Uint64
}

// NewServer constructs a Server bound to cfg, with a fresh GameLoop
// over w and reg.
func NewServer(cfg config.Server, w *world.World, reg *character.Registry) *Server {
	loop := NewGameLoop(w, reg, cfg.InitialPoints, cfg.StatLimit, cfg.ServerDescription, 1024)
	return &Server{cfg: cfg, loop: loop}
}

// Run binds the configured address, runs the game loop and the accept
// loop concurrently via an errgroup, and blocks until ctx is cancelled
// or either goroutine returns an error.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.BindAddress, s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln and starts the game loop. Exposed
// separately from Run so tests can pass a net.Pipe-backed or
// in-memory listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.loop.Run(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})

	g.Go(func() error {
		slog.Info("lurk server listening", "address", ln.Addr())
		return s.acceptLoop(ctx, ln)
	})

	return g.Wait()
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			slog.Error("accept failed", "error", err)
			continue
		}

		if tcpConn, ok := conn.(*net.TCPConn); ok {
			if err := tcpConn.SetKeepAlive(true); err != nil {
				slog.Warn("set keepalive failed", "error", err)
			}
			if err := tcpConn.SetKeepAlivePeriod(30 * time.Second); err != nil {
				slog.Warn("set keepalive period failed", "error", err)
			}
		}

		id := s.nextID.Add(1)
		c := NewConnection(conn, id, s.cfg.SendQueueSize, s.cfg.ReadTimeout, s.cfg.WriteTimeout)
		slog.Info("client connected", "client", c.Addr(), "id", id)

		wg.Add(1)
		go func() {
			defer wg.Done()
			c.ReadLoop(s.loop.Events)
			slog.Info("client disconnected", "client", c.Addr(), "id", id)
		}()
	}
}

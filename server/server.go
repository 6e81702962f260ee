// Package server provides the line-oriented TCP front end: one goroutine
// per connection, one command per line, one response per command.
//
// The server owns framing, the optional shared-secret gate and per-connection
// rate pacing; everything after the frame boundary belongs to package
// protocol.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/FaizChishtie/vemcache"
	"github.com/FaizChishtie/vemcache/protocol"
)

// Lines carry whole vectors, so the frame limit is generous.
const maxLineBytes = 1 << 20

// Server accepts TCP connections and feeds complete text lines to the
// dispatcher.
type Server struct {
	addr       string
	dispatcher *protocol.Dispatcher
	logger     *vemcache.Logger
	secret     string
	rateLimit  rate.Limit
	rateBurst  int
}

// Option configures the server.
type Option func(*Server)

// WithLogger configures structured logging for connection lifecycle events.
func WithLogger(logger *vemcache.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSecret enables the authentication gate: the first line of every
// connection must be "auth <secret>" before commands are accepted.
// An empty secret disables the gate.
func WithSecret(secret string) Option {
	return func(s *Server) {
		s.secret = secret
	}
}

// WithRateLimit paces each connection to limit commands per second with the
// given burst. A zero limit disables pacing.
func WithRateLimit(limit float64, burst int) Option {
	return func(s *Server) {
		s.rateLimit = rate.Limit(limit)
		s.rateBurst = burst
	}
}

// New creates a Server listening on addr once served.
func New(addr string, dispatcher *protocol.Dispatcher, optFns ...Option) *Server {
	s := &Server{
		addr:       addr,
		dispatcher: dispatcher,
		logger:     vemcache.NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(s)
		}
	}
	return s
}

// ListenAndServe binds the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then closes the
// listener and every active connection and waits for the handlers to drain.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})

	s.logger.InfoContext(ctx, "listening", "addr", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.WarnContext(ctx, "accept failed", "error", err)
			continue
		}
		g.Go(func() error {
			s.handleConn(ctx, conn)
			return nil
		})
	}

	// The listener is gone; release the shutdown watcher and drain handlers.
	cancel()

	if err := g.Wait(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	remote := conn.RemoteAddr().String()
	s.logger.DebugContext(ctx, "client connected", "remote", remote)
	defer s.logger.DebugContext(ctx, "client disconnected", "remote", remote)

	// Unblock the scanner on shutdown.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	defer conn.Close()

	var limiter *rate.Limiter
	if s.rateLimit > 0 {
		limiter = rate.NewLimiter(s.rateLimit, max(s.rateBurst, 1))
	}

	authed := s.secret == ""

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Text()

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
		}

		if !authed {
			ok, resp := s.checkAuth(line)
			if _, err := fmt.Fprintln(conn, resp); err != nil {
				return
			}
			if !ok {
				// One shot; a wrong or missing secret ends the session.
				return
			}
			authed = true
			continue
		}

		resp := s.dispatcher.Handle(ctx, line)
		if _, err := fmt.Fprintln(conn, resp); err != nil {
			return
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
		s.logger.WarnContext(ctx, "read failed", "remote", remote, "error", err)
	}
}

// checkAuth validates the gate line and returns whether the session may
// proceed plus the response text.
func (s *Server) checkAuth(line string) (bool, string) {
	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != "auth" {
		return false, "ERR authentication required"
	}
	if fields[1] != s.secret {
		return false, "ERR invalid secret"
	}
	return true, "OK"
}

package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/daylog/pkg/app"
)

// Transport is how MCP clients reach the journal.
type Transport string

const (
	TransportHTTP  Transport = "http"
	TransportStdio Transport = "stdio"
)

// ParseTransport accepts "http" or "stdio". Empty input means http.
func ParseTransport(raw string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(raw))); t {
	case "":
		return TransportHTTP, nil
	case TransportHTTP, TransportStdio:
		return t, nil
	default:
		return "", fmt.Errorf("mcp: unknown transport %q (expected http or stdio)", raw)
	}
}

const (
	defaultAddr = "127.0.0.1:8080"
	defaultPath = "/mcp"
)

// Server exposes the journal tools and resources to MCP clients.
type Server struct {
	App       *app.Service
	Version   string
	Transport Transport

	// Addr and Path locate the HTTP endpoint.
	Addr string
	Path string
	// Ready is called with the bound address once HTTP is listening.
	Ready func(addr net.Addr, path string)
}

// Serve blocks until ctx is done or the transport fails.
func (s Server) Serve(ctx context.Context) error {
	if s.App == nil {
		return errors.New("mcp: no app service")
	}
	version := s.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		"daylog",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Search daily journal entries and goals, read month calendars, and record moods, habits and goal progress."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(s.App)
	registerResources(srv, svc)
	registerTools(srv, svc)

	switch s.Transport {
	case "", TransportHTTP:
		return s.serveHTTP(ctx, srv)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("mcp: unknown transport %q", s.Transport)
	}
}

func (s Server) endpoint() string {
	path := strings.TrimSpace(s.Path)
	if path == "" {
		return defaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func (s Server) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	addr := s.Addr
	if addr == "" {
		addr = defaultAddr
	}
	path := s.endpoint()

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mcp: listen: %w", err)
	}
	if s.Ready != nil {
		s.Ready(ln.Addr(), path)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

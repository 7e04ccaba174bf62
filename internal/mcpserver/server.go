package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/mark3labs/dispatch/internal/store"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultAddr listens on a random loopback port.
const DefaultAddr = "127.0.0.1:0"

// Server manages an MCP HTTP server exposing the schedule, certificates and
// dispute threads to external assistants.
type Server struct {
	store      *store.Store
	addr       string
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	stdServer  *http.Server // Standard HTTP server that uses the listener
	port       int
	mu         sync.Mutex
}

// New creates a new MCP server over st listening on addr (DefaultAddr when
// empty). The server is not started until Start() is called.
func New(st *store.Store, addr string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		store: st,
		addr:  addr,
	}
}

// Start starts the MCP HTTP server.
// Returns the port number or an error if startup fails.
func (s *Server) Start(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	// Create MCP server with registered tools
	s.mcpServer = server.NewMCPServer(
		"dispatch-tools",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register tools
	if err := s.registerTools(); err != nil {
		return 0, fmt.Errorf("failed to register tools: %w", err)
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return 0, fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	// Get the port that was assigned
	s.port = listener.Addr().(*net.TCPAddr).Port

	// Create HTTP server with stateless mode and pass listener directly to avoid TOCTOU race
	mux := http.NewServeMux()
	mcpHandler := server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)
	mux.Handle("/mcp", mcpHandler)

	s.stdServer = &http.Server{
		Handler: mux,
	}
	s.httpServer = mcpHandler

	logger.Debug("Starting MCP server on port %d", s.port)

	// Start server in background using the pre-opened listener
	// Capture stdServer reference for goroutine to avoid race with Stop()
	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	logger.Info("MCP server ready on port %d", s.port)
	return s.port, nil
}

// Stop stops the MCP HTTP server and cleans up resources.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil // Already stopped
	}

	logger.Debug("Stopping MCP server")
	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.httpServer = nil
	s.stdServer = nil
	s.mcpServer = nil
	logger.Debug("MCP server stopped")
	return nil
}

// URL returns the HTTP URL for the MCP server endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}

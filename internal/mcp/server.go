// ABOUTME: MCP server setup for the vitral health dashboard.
// ABOUTME: Wraps the MCP server around a dashboard Service for one user.
package mcp

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/harperreed/vitral/internal/dashboard"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with dashboard access.
type Server struct {
	mcpServer *mcp.Server
	svc       *dashboard.Service
	logger    *log.Logger
}

// NewServer creates a new MCP server backed by svc.
func NewServer(svc *dashboard.Service) (*Server, error) {
	if svc == nil || svc.Source == nil {
		return nil, errors.New("mcp server needs a record source")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "vitral",
			Version: Version,
		},
		nil,
	)

	logger := svc.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
		logger:    logger.WithPrefix("mcp"),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Debug("serving on stdio", "source", s.svc.Source.Name())
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

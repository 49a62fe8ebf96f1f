package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// ServerName is reported to clients during initialize.
const ServerName = "prompt-guard-mcp"

// Server exposes the risk assessment tool over the Model Context Protocol.
// Framing, the initialize handshake and request dispatch are handled by
// the go-sdk; tool calls are answered by assessor.
type Server struct {
	assessor Assessor
	version  string
	logger   zerolog.Logger

	mcp *gomcp.Server
}

// NewServer creates a Server that answers tool calls with assessor.
func NewServer(assessor Assessor, version string, logger zerolog.Logger) *Server {
	s := &Server{assessor: assessor, version: version, logger: logger}
	s.mcp = gomcp.NewServer(&gomcp.Implementation{Name: ServerName, Version: version}, nil)
	s.mcp.AddTool(analyzeRiskTool(), s.callTool)
	return s
}

// Connect starts a session over t without blocking.
func (s *Server) Connect(ctx context.Context, t gomcp.Transport) (*gomcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}

// Run serves a single session over t until the peer goes away or ctx is
// done. A closed input is a clean shutdown.
func (s *Server) Run(ctx context.Context, t gomcp.Transport) error {
	s.logger.Info().Str("version", s.version).Msg("mcp_server_started")

	err := s.mcp.Run(ctx, t)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("serving mcp: %w", err)
	}
	s.logger.Info().Msg("mcp_input_closed")
	return nil
}

// Serve runs the server over newline-delimited JSON-RPC on in and out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return s.Run(ctx, Transport(in, out))
}

// Transport picks the SDK's stdio transport for the process streams and
// an IOTransport for anything else. out is never closed by the session.
func Transport(in io.Reader, out io.Writer) gomcp.Transport {
	if in == io.Reader(os.Stdin) && out == io.Writer(os.Stdout) {
		return &gomcp.StdioTransport{}
	}
	rc, ok := in.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(in)
	}
	return &gomcp.IOTransport{Reader: rc, Writer: nopWriteCloser{out}}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

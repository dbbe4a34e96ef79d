package mcpserver

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"sketchnotes/internal/domain"
)

// Workspace is the note list and open-note session the tools drive.
// service.Workspace implements it.
type Workspace interface {
	ListNotes() []domain.Note
	CreateNote(name string) domain.Note
	DeleteNote(id string)
	PageCount(noteID string) int

	OpenNote(noteID string) (domain.PageState, error)
	CloseNote()
	PageState() (domain.PageState, error)
	NextPage() (domain.PageState, error)
	PreviousPage() (domain.PageState, error)
	SaveDrawing(drawing []byte) (domain.PageState, error)
	SetPen(color string, width float64) (domain.PageState, error)
	SetEraser() (domain.PageState, error)
}

// Server exposes the note list and the canvas boundary as MCP tools,
// resources and a guiding prompt.
type Server struct {
	mcp       *server.MCPServer
	workspace Workspace
	log       *zap.Logger
}

// New creates and configures the MCP server with all tools and resources.
func New(workspace Workspace, version string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		workspace: workspace,
		log:       log.Named("mcp"),
	}

	s.mcp = server.NewMCPServer(
		"sketchnotes",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(false),
	)

	s.registerNoteTools()
	s.registerPageTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// ServeStdio serves MCP on stdin/stdout until stdin closes or the process
// is signalled.
func (s *Server) ServeStdio() error {
	s.log.Info("starting stdio server")
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server, e.g. to mount another transport.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// errorResult reports a tool-level failure the agent can act on.
func errorResult(err error) *mcp.CallToolResult {
	res := textResult(err.Error())
	res.IsError = true
	return res
}

// stateResult wraps a workspace call that yields the open page.
func stateResult(state domain.PageState, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(state)
}


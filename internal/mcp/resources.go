package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() {
	// ── notes://notes ──────────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"notes://notes",
		"All Notes",
		mcp.WithMIMEType("application/json"),
	), s.handleNotesResource)

	// ── notes://note/{noteId}/pages ────────────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"notes://note/{noteId}/pages",
			"Saved page count of a note",
		),
		s.handleNotePagesResource,
	)
}

func (s *Server) handleNotesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(s.workspace.ListNotes(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "notes://notes",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleNotePagesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	noteID := extractNoteIDFromURI(uri)
	if noteID == "" {
		return nil, fmt.Errorf("could not extract noteId from URI: %s", uri)
	}

	data, err := json.Marshal(map[string]any{
		"noteId": noteID,
		"pages":  s.workspace.PageCount(noteID),
	})
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// extractNoteIDFromURI extracts the id from "notes://note/{id}/pages".
func extractNoteIDFromURI(uri string) string {
	rest, ok := strings.CutPrefix(uri, "notes://note/")
	if !ok {
		return ""
	}
	id, ok := strings.CutSuffix(rest, "/pages")
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}

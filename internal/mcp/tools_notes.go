package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func boolPtr(b bool) *bool { return &b }

func (s *Server) registerNoteTools() {
	// ── list_notes ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes with their ids and names"),
	), s.handleListNotes)

	// ── create_note ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new, empty note. A blank name becomes \"Untitled\"."),
		mcp.WithString("name", mcp.Description("Display name of the note")),
	), s.handleCreateNote)

	// ── delete_note ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note and all of its pages"),
		mcp.WithString("noteId", mcp.Description("ID of the note"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteNote)

	// ── open_note ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("open_note",
		mcp.WithDescription("Open a note on its first page. Any open note is saved and closed first."),
		mcp.WithString("noteId", mcp.Description("ID of the note"), mcp.Required()),
	), s.handleOpenNote)

	// ── close_note ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("close_note",
		mcp.WithDescription("Save the current page and close the open note"),
	), s.handleCloseNote)
}

func (s *Server) handleListNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.workspace.ListNotes())
}

func (s *Server) handleCreateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note := s.workspace.CreateNote(req.GetString("name", ""))
	s.log.Info("note created via mcp")
	return jsonResult(note)
}

func (s *Server) handleDeleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	noteID := req.GetString("noteId", "")
	if noteID == "" {
		return nil, fmt.Errorf("noteId is required")
	}
	s.workspace.DeleteNote(noteID)
	return textResult(fmt.Sprintf("Deleted note %s", noteID)), nil
}

func (s *Server) handleOpenNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	noteID := req.GetString("noteId", "")
	if noteID == "" {
		return nil, fmt.Errorf("noteId is required")
	}
	return stateResult(s.workspace.OpenNote(noteID))
}

func (s *Server) handleCloseNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.workspace.CloseNote()
	return textResult("Note closed"), nil
}

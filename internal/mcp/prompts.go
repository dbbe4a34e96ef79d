package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("sketch_note",
		mcp.WithPromptDescription("Walk through creating a note and filling its pages with drawings"),
		mcp.WithArgument("name",
			mcp.ArgumentDescription("Name for the new note"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("pages",
			mcp.ArgumentDescription("How many pages to draw (default 1)"),
		),
	), s.handleSketchNotePrompt)
}

func (s *Server) handleSketchNotePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := req.Params.Arguments["name"]
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	pages := req.Params.Arguments["pages"]
	if pages == "" {
		pages = "1"
	}
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Sketch the note %q", name),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Create a note called "%s" and draw %s page(s) in it. Follow these steps:

1. Use create_note with name "%s" and keep the returned id
2. Use open_note with that id; it starts on page 1 with a black pen of width 2
3. Pick a tool with set_pen (color #RRGGBB, width 2, 4 or 8) or set_eraser
4. Use save_drawing with the base64 drawing for the current page
5. Use next_page to move on; an untouched page is not stored, so only draw where needed
6. When done, call close_note so the last page is saved

get_page shows the current counter ("current / total") at any time.`, name, pages, name),
				},
			},
		},
	}, nil
}

package mcpserver

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPageTools() {
	s.mcp.AddTool(mcp.NewTool("get_page",
		mcp.WithDescription("Get the open page: index, counter, active tool and base64 drawing"),
	), s.handleGetPage)

	s.mcp.AddTool(mcp.NewTool("next_page",
		mcp.WithDescription("Save the current page and move to the next one. Moving past the last page starts a new empty page."),
	), s.handleNextPage)

	s.mcp.AddTool(mcp.NewTool("previous_page",
		mcp.WithDescription("Save the current page and move to the previous one. Does nothing on the first page."),
	), s.handlePreviousPage)

	s.mcp.AddTool(mcp.NewTool("save_drawing",
		mcp.WithDescription("Replace the open page's drawing and save it"),
		mcp.WithString("drawing", mcp.Description("Drawing blob, base64 encoded"), mcp.Required()),
	), s.handleSaveDrawing)

	s.mcp.AddTool(mcp.NewTool("set_pen",
		mcp.WithDescription("Select the pen with a color and one of the widths 2, 4 or 8"),
		mcp.WithString("color", mcp.Description("Color hex, e.g. #000000"), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("Stroke width: 2, 4 or 8"), mcp.Required()),
	), s.handleSetPen)

	s.mcp.AddTool(mcp.NewTool("set_eraser",
		mcp.WithDescription("Select the eraser. The pen settings are kept for later."),
	), s.handleSetEraser)
}

func (s *Server) handleGetPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return stateResult(s.workspace.PageState())
}

func (s *Server) handleNextPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return stateResult(s.workspace.NextPage())
}

func (s *Server) handlePreviousPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return stateResult(s.workspace.PreviousPage())
}

func (s *Server) handleSaveDrawing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	encoded := req.GetString("drawing", "")
	drawing, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("drawing is not valid base64: %w", err)
	}
	return stateResult(s.workspace.SaveDrawing(drawing))
}

func (s *Server) handleSetPen(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	color, _ := args["color"].(string)
	width, ok := args["width"].(float64)
	if color == "" || !ok {
		return nil, fmt.Errorf("color and width are required")
	}
	return stateResult(s.workspace.SetPen(color, width))
}

func (s *Server) handleSetEraser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return stateResult(s.workspace.SetEraser())
}

package app

import (
	"go.uber.org/zap"

	"sketchnotes/internal/config"
	mcpserver "sketchnotes/internal/mcp"
)

// ServeMCP runs the app as an MCP server on stdin/stdout. The open note is
// saved when the client disconnects or the process is interrupted.
func ServeMCP(cfg *config.AppConfig, log *zap.Logger, version string) error {
	a, err := New(cfg, log, newLogEmitter(log))
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Shutdown(); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()

	srv := mcpserver.New(a.Workspace(), version, log)
	return srv.ServeStdio()
}

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sketchnotes/internal/app"
	"sketchnotes/internal/service"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPAGES")
			ws := a.Workspace()
			for _, n := range ws.ListNotes() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", n.ID, n.Name, ws.PageCount(n.ID))
			}
			return w.Flush()
		})
	},
}

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a note",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		return withApp(func(a *app.App) error {
			n := a.Workspace().CreateNote(name)
			fmt.Fprintln(cmd.OutOrStdout(), n.ID)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note and all its pages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			a.Workspace().DeleteNote(args[0])
			return nil
		})
	},
}

var pagesCmd = &cobra.Command{
	Use:   "pages <id>",
	Short: "Print the page counter a note opens with",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			label, err := openingCounter(a.Workspace(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		})
	},
}

// openingCounter renders the counter a note shows on open without opening
// it, so nothing is written back on exit.
func openingCounter(ws *service.Workspace, noteID string) (string, error) {
	for _, n := range ws.ListNotes() {
		if n.ID == noteID {
			return fmt.Sprintf("1 / %d", max(ws.PageCount(noteID), 1)), nil
		}
	}
	return "", fmt.Errorf("note %s: %w", noteID, service.ErrUnknownNote)
}

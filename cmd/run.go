package cmd

import (
	"github.com/spf13/cobra"

	"github.com/evalyze/evalyze/internal/app"
	"github.com/evalyze/evalyze/internal/session"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// A non-nil spec starts that test straight away.
func runApp(cmd *cobra.Command, spec *session.TestSpec) error {
	d, err := openDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.close()

	sv := d.services()
	status := sv.Model
	if status == "" {
		status = "offline"
	}
	return app.Run(sv, app.Options{Status: status, Initial: spec})
}

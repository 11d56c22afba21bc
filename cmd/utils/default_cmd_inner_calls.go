package utils

import "github.com/spf13/cobra"

// PropagatePersistentPreRun runs the parent command's PersistentPreRun, so
// subcommands keep the root command's config ingestion.
var PropagatePersistentPreRun = func(cmd *cobra.Command, args []string) {
	if cmd.Parent().PersistentPreRun != nil {
		cmd.Parent().PersistentPreRun(cmd.Parent(), args)
	}
}

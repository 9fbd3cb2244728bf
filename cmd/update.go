package cmd

import (
	"github.com/spf13/cobra"
)

// updateCmd represents the update command.
var updateCmd = newUpdateCmd()

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update [path]",
		Short: "Update annotated version literals",
		Long:  updateLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runUpdate,
	}
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

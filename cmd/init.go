package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default cup.yaml configuration file",
		Long: `Create a cup.yaml in the current working directory populated with the
current defaults so it can be edited manually. An existing file is left untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := configFilePath()

			err := viper.SafeWriteConfigAs(targetPath)

			var exists viper.ConfigFileAlreadyExistsError
			if errors.As(err, &exists) {
				cmd.Printf("%s already exists, leaving it unchanged\n", targetPath)
				return nil
			}

			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Wrote %s\n", targetPath)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}

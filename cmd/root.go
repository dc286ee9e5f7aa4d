package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pipeforge/prql-translator/internal/config"
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "translator",
		Short:        "Translates JSON pipeline documents into PRQL and SQL",
		SilenceUsage: true,
	}

	cfg := config.NewConfigurationWithOptionsAndDefaults()
	root.AddCommand(NewRunCommand(cfg))

	return root
}

func Execute() error {
	return NewRootCommand().Execute()
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/sommelier/internal/api"
	"github.com/jackzampolin/sommelier/internal/personas"
	"github.com/jackzampolin/sommelier/internal/svcctx"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List sommelier personas",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		reg, err := loadPersonas(logger)
		if err != nil {
			return err
		}

		if api.GetOutputFormat() != api.OutputFormatText {
			return api.Output(reg.List())
		}
		for _, p := range reg.List() {
			fmt.Printf("%-20s %s\n", p.Key, p.Name)
			fmt.Printf("%-20s %s\n\n", "", p.Context)
		}
		return nil
	},
}

// loadPersonas loads the registry without connecting a chat backend.
func loadPersonas(logger *slog.Logger) (*personas.Registry, error) {
	h, cm, err := loadConfig(logger)
	if err != nil {
		return nil, err
	}
	return personas.Load(svcctx.PersonasFile(cm.Get(), h))
}

func init() {
	rootCmd.AddCommand(personasCmd)
}

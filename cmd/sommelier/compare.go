package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/sommelier/internal/api"
)

var (
	cmpName string
	cmpDish string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare every persona's pairing for one dish",
	Long: `Ask every persona about the same dish, in registry order.
Comparisons are never saved and never include bottles.

Example:
  sommelier compare --name Ann --dish "mushroom risotto"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger, err := newLogger()
		if err != nil {
			return err
		}
		svc, err := loadServices(ctx, logger)
		if err != nil {
			return err
		}
		defer svc.Close()

		results := svc.Sommelier.ComparePersonas(ctx, cmpName, cmpDish)
		if api.GetOutputFormat() != api.OutputFormatText {
			return api.Output(results)
		}
		for i, c := range results {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("=== %s ===\n%s\n", c.PersonaName, c.Text)
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVar(&cmpName, "name", "", "Customer name")
	compareCmd.Flags().StringVar(&cmpDish, "dish", "", "Dish description (required)")
	compareCmd.MarkFlagRequired("dish")

	rootCmd.AddCommand(compareCmd)
}

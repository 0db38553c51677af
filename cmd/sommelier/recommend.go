package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/sommelier/internal/api"
	"github.com/jackzampolin/sommelier/internal/interactions"
	"github.com/jackzampolin/sommelier/internal/sommelier"
)

var (
	recName      string
	recDish      string
	recPersona   string
	recBottles   bool
	recNoSave    bool
	recMaxPrice  int
	recExport    bool
	recExportDir string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Ask a sommelier persona for a wine pairing",
	Long: `Ask one persona for a wine pairing without a running server.

Examples:
  sommelier recommend --name Ann --dish "grilled salmon"
  sommelier recommend --dish "ribeye" --persona rick_sanchez --bottles
  sommelier recommend --dish "pad thai" --export           # writes to ~/.sommelier/exports`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger, err := newLogger()
		if err != nil {
			return err
		}
		if recExport && recNoSave {
			return errors.New("--export needs the saved interaction; drop --no-save")
		}

		svc, err := loadServices(ctx, logger)
		if err != nil {
			return err
		}
		defer svc.Close()

		req := sommelier.DefaultRequest(recName, recDish, recPersona)
		req.SaveResponse = !recNoSave
		req.IncludeBottles = recBottles
		req.MaxPrice = recMaxPrice

		res := svc.Sommelier.Recommend(ctx, req)
		if res.Err != nil {
			return res.Err
		}
		if err := outputResult(res); err != nil {
			return err
		}

		if recExport && res.Record != nil {
			dir := recExportDir
			if dir == "" {
				dir = svc.Home.ExportsDir()
			}
			path, err := interactions.WriteExport(dir, *res.Record)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", path)
		}
		return nil
	},
}

// outputResult prints the text in text mode and the full result otherwise.
func outputResult(res sommelier.Result) error {
	if api.GetOutputFormat() == api.OutputFormatText {
		fmt.Println(res.Text)
		return nil
	}
	return api.Output(res)
}

func init() {
	recommendCmd.Flags().StringVar(&recName, "name", "", "Customer name")
	recommendCmd.Flags().StringVar(&recDish, "dish", "", "Dish description (required)")
	recommendCmd.Flags().StringVar(&recPersona, "persona", sommelier.DefaultPersona, "Persona key")
	recommendCmd.Flags().BoolVar(&recBottles, "bottles", false, "Append bottle suggestions")
	recommendCmd.Flags().BoolVar(&recNoSave, "no-save", false, "Do not record the interaction")
	recommendCmd.Flags().IntVar(&recMaxPrice, "max-price", 0, "Maximum bottle price (0 uses bottles.max_price)")
	recommendCmd.Flags().BoolVar(&recExport, "export", false, "Write the recommendation to a text file")
	recommendCmd.Flags().StringVar(&recExportDir, "export-dir", "", "Export directory (default: <home>/exports)")
	recommendCmd.MarkFlagRequired("dish")

	rootCmd.AddCommand(recommendCmd)
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/sommelier/internal/api"
	"github.com/jackzampolin/sommelier/internal/bottles"
)

var (
	btlVarietal string
	btlDish     string
	btlMaxPrice int
	btlList     bool
)

var bottlesCmd = &cobra.Command{
	Use:   "bottles",
	Short: "Find concrete bottles for a varietal",
	Long: `Find concrete bottles for a varietal. Spoonacular is queried when
bottles.api_key is set; otherwise the built-in catalog is used.

Examples:
  sommelier bottles --varietal "Pinot Noir"
  sommelier bottles --varietal Merlot --max-price 30
  sommelier bottles --list                         # catalog varietals`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if btlList {
			for _, v := range bottles.CatalogVarietals() {
				fmt.Println(v)
			}
			return nil
		}
		if btlVarietal == "" {
			return errors.New("--varietal is required")
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		_, cm, err := loadConfig(logger)
		if err != nil {
			return err
		}

		searcher := bottles.NewSearcher(cm.Get().ToBottlesConfig(logger))
		found := searcher.Search(cmd.Context(), btlVarietal, btlDish, btlMaxPrice)
		if api.GetOutputFormat() == api.OutputFormatText {
			fmt.Print(bottles.Format(found))
			return nil
		}
		return api.Output(found)
	},
}

func init() {
	bottlesCmd.Flags().StringVar(&btlVarietal, "varietal", "", "Grape varietal (e.g. Pinot Noir)")
	bottlesCmd.Flags().StringVar(&btlDish, "dish", "", "Dish description")
	bottlesCmd.Flags().IntVar(&btlMaxPrice, "max-price", 0, "Maximum price (0 uses bottles.max_price)")
	bottlesCmd.Flags().BoolVar(&btlList, "list", false, "List varietals in the built-in catalog")

	rootCmd.AddCommand(bottlesCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/estimate-intake/internal/pricing"
)

var priceEnrichedSqft float64

var priceCmd = &cobra.Command{
	Use:   "price <submission.json>",
	Short: "Price a submission offline (no enrichment, doc, or CRM calls)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sub, err := loadSubmission(args[0])
		if err != nil {
			return err
		}

		result := pricing.Compute(sub.PropertyType, sub.ServicesRequested, float64(sub.EstimatedSqft), priceEnrichedSqft)

		fmt.Printf("Property type: %s\n", sub.PropertyType)
		fmt.Printf("Resolved sqft: %.0f\n", result.ResolvedSqft)
		fmt.Println("Service | Qty | Unit Price | Total")
		for _, item := range result.LineItems {
			fmt.Printf("%s | %d | $%.2f | $%.2f\n", item.Name, item.Qty, item.UnitPrice, item.Total)
		}
		fmt.Printf("Estimated total: $%.2f\n", result.EstimatedTotal)
		if result.HasAssumptions {
			fmt.Println("Note: pricing assumptions applied.")
		}

		return nil
	},
}

func init() {
	priceCmd.Flags().Float64Var(&priceEnrichedSqft, "enriched-sqft", 0, "square footage to use when the submission has none")
	rootCmd.AddCommand(priceCmd)
}

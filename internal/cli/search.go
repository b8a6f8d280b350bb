package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rigcheck/rigcheck-go/internal/filter"
	"github.com/rigcheck/rigcheck-go/internal/models"
)

var (
	searchCategory string
	searchBrand    string
	searchMinPrice string
	searchMaxPrice string
	searchSpecs    []string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Query component records by category, brand, price, and specs",
	Long: `Search the component database. Spec filters accept dotted paths into
nested specs and comparison operators on numeric values.

Examples:
  rigcheck search --category cpu --brand AMD
  rigcheck search --category cpu --min-price 1000 --max-price 1500 --spec "core_count=>=6"
  rigcheck search --category gpu --spec "benchmarks.timespy=>=20000"
  rigcheck search --category motherboard --spec "socket=AM5"`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "component category (cpu, gpu, motherboard, ...)")
	searchCmd.Flags().StringVarP(&searchBrand, "brand", "b", "", "exact brand match")
	searchCmd.Flags().StringVar(&searchMinPrice, "min-price", "", "minimum price")
	searchCmd.Flags().StringVar(&searchMaxPrice, "max-price", "", "maximum price")
	searchCmd.Flags().StringSliceVarP(&searchSpecs, "spec", "s", nil, "spec predicate key=value (repeatable)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	preds := filter.Predicates{}
	if searchBrand != "" {
		preds[filter.KeyBrand] = searchBrand
	}
	if searchMinPrice != "" {
		preds[filter.KeyMinPrice] = searchMinPrice
	}
	if searchMaxPrice != "" {
		preds[filter.KeyMaxPrice] = searchMaxPrice
	}
	for _, raw := range searchSpecs {
		key, value, ok := strings.Cut(raw, "=")
		if !ok {
			return fmt.Errorf("invalid spec predicate %q (want key=value)", raw)
		}
		preds[key] = value
	}

	advisor, err := getAdvisor(false)
	if err != nil {
		return err
	}

	results, err := advisor.QueryComponents(cmd.Context(), models.Category(searchCategory), preds)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No components found.")
		return nil
	}

	fmt.Printf("Found %d components:\n\n", len(results))
	for i, c := range results {
		fmt.Printf("%d. %s [%s]\n", i+1, c.Name, c.Category)
		if c.Price != nil {
			fmt.Printf("   %s %s — %.2f\n", c.Brand, c.Model, *c.Price)
		} else {
			fmt.Printf("   %s %s\n", c.Brand, c.Model)
		}
		if verbose {
			for key, value := range c.Specs {
				fmt.Printf("   %s: %s\n", key, models.StringForm(value))
			}
		}
	}
	return nil
}

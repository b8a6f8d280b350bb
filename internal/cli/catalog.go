package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rigcheck/rigcheck-go/internal/models"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the component categories in the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		advisor, err := getAdvisor(false)
		if err != nil {
			return err
		}
		categories, err := advisor.Categories(cmd.Context())
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		for _, c := range categories {
			fmt.Println(c)
		}
		return nil
	},
}

var brandsCmd = &cobra.Command{
	Use:   "brands <category>",
	Short: "List the brands stocked within one category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		advisor, err := getAdvisor(false)
		if err != nil {
			return err
		}
		brands, err := advisor.Brands(cmd.Context(), models.Category(args[0]))
		if err != nil {
			return fmt.Errorf("list brands: %w", err)
		}
		for _, b := range brands {
			fmt.Println(b)
		}
		return nil
	},
}

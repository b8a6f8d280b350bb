package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rigcheck/rigcheck-go/internal/models"
	"github.com/rigcheck/rigcheck-go/internal/store"
)

var (
	exportCategory string
	exportBrand    string
)

var exportCmd = &cobra.Command{
	Use:   "export <components.json>",
	Short: "Export component records to a JSON file",
	Long: `Export the component database to a JSON array for backup or migration.
The output is accepted as-is by 'rigcheck import'.

Examples:
  rigcheck export backup.json
  rigcheck export cpus.json --category cpu
  rigcheck export amd.json --brand AMD`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportCategory, "category", "c", "", "export only this category")
	exportCmd.Flags().StringVarP(&exportBrand, "brand", "b", "", "export only this brand")
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]

	components, err := db.Fetch(cmd.Context(), store.FetchOptions{
		Category: models.Category(exportCategory),
		Brand:    exportBrand,
	})
	if err != nil {
		return fmt.Errorf("fetch components: %w", err)
	}
	if len(components) == 0 {
		fmt.Println("No components to export.")
		return nil
	}

	data, err := json.MarshalIndent(components, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal components: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Printf("Exported %d components to %s\n", len(components), path)
	return nil
}

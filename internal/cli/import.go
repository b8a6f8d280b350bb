package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importReplace bool

var importCmd = &cobra.Command{
	Use:   "import <components.json> [more.json ...]",
	Short: "Load component records into the database",
	Long: `Import component records from JSON files, each holding an array of
records with name, category, brand, model, price, and specs.

Example:
  rigcheck import cpu.json gpu.json motherboard.json --replace`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "clear existing records first")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if importReplace {
		if err := db.Clear(ctx); err != nil {
			return err
		}
	}

	total := 0
	for _, path := range args {
		components, err := readBuildFile(path)
		if err != nil {
			return err
		}
		if err := db.Seed(ctx, components); err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		fmt.Printf("Imported %d components from %s\n", len(components), path)
		total += len(components)
	}
	fmt.Printf("Done: %d components.\n", total)
	return nil
}

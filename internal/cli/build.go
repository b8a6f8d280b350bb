package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rigcheck/rigcheck-go/internal/models"
)

var buildJSON bool

var buildCmd = &cobra.Command{
	Use:   "build <build.json>",
	Short: "Review a full configuration: all pairwise checks plus power profile",
	Long: `Review an assembled build described by a JSON file containing an array of
component records. Every ordered pair covered by a rule is checked and the
power draw and recommended PSU rating are estimated.

Example:
  rigcheck build mybuild.json
  rigcheck build mybuild.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "print the full report as JSON")
}

func runBuild(cmd *cobra.Command, args []string) error {
	components, err := readBuildFile(args[0])
	if err != nil {
		return err
	}

	advisor, err := getAdvisor(true)
	if err != nil {
		return err
	}

	report := advisor.CheckBuild(cmd.Context(), components)

	if buildJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("Build review %s — %s\n\n", report.ID, report.Compatible)
	for _, result := range report.Results {
		fmt.Printf("[%s] %s  <->  %s\n", result.Verdict.Compatible, result.ComponentA, result.ComponentB)
		fmt.Printf("    %s (confidence %.2f)\n", result.Verdict.Reason, result.Verdict.Confidence)
	}
	fmt.Printf("\nEstimated draw:   %.0fW\n", report.Power.TotalPowerEstimate)
	fmt.Printf("Recommended PSU:  %.0fW\n", report.Power.RecommendedPSUWattage)
	return nil
}

// readBuildFile loads a JSON array of component records.
func readBuildFile(path string) ([]models.Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read build file: %w", err)
	}
	var components []models.Component
	if err := json.Unmarshal(data, &components); err != nil {
		return nil, fmt.Errorf("parse build file %s: %w", path, err)
	}
	for _, c := range components {
		if c.Category == "" {
			return nil, fmt.Errorf("component %q has no category", c.Name)
		}
	}
	return components, nil
}

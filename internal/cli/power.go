package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var powerCmd = &cobra.Command{
	Use:   "power <build.json>",
	Short: "Estimate power draw and recommended PSU rating for a build",
	Args:  cobra.ExactArgs(1),
	RunE:  runPower,
}

func runPower(cmd *cobra.Command, args []string) error {
	components, err := readBuildFile(args[0])
	if err != nil {
		return err
	}

	advisor, err := getAdvisor(false)
	if err != nil {
		return err
	}

	estimate := advisor.EstimatePower(components)

	fmt.Printf("Estimated draw:   %.0fW\n", estimate.TotalPowerEstimate)
	fmt.Printf("Recommended PSU:  %.0fW\n", estimate.RecommendedPSUWattage)
	fmt.Println("Breakdown:")

	keys := make([]string, 0, len(estimate.ComponentBreakdown))
	for key := range estimate.ComponentBreakdown {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("  %-24s %.1fW\n", key, estimate.ComponentBreakdown[key])
	}
	return nil
}

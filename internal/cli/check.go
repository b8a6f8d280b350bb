package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <component-a> <component-b>",
	Short: "Check whether two stored components are compatible",
	Long: `Check one ordered component pair. The check direction follows the rule
table (cpu then motherboard, gpu then psu, ...); pairs without a local rule
are decided by the LLM.

Examples:
  rigcheck check "AMD Ryzen 7 7800X3D" "MSI MAG B650 TOMAHAWK"
  rigcheck check "NVIDIA GeForce RTX 4070" "Corsair RM750e"`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	advisor, err := getAdvisor(true)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	compA, err := advisor.FindByName(ctx, args[0])
	if err != nil {
		return err
	}
	compB, err := advisor.FindByName(ctx, args[1])
	if err != nil {
		return err
	}

	verdict := advisor.CheckPair(ctx, compA, compB)
	fmt.Printf("%s  <->  %s\n", compA.Name, compB.Name)
	fmt.Printf("Result:     %s\n", verdict.Compatible)
	fmt.Printf("Reason:     %s\n", verdict.Reason)
	fmt.Printf("Confidence: %.2f\n", verdict.Confidence)
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/zen/internal/arbitrary"
	"github.com/cwbudde/zen/internal/modelcheck"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var expectedFixture string

var checkCmd = &cobra.Command{
	Use:   "check [scenario]",
	Short: "Check a scenario's satisfiability against an expected-value fixture",
	Long: `check finds a satisfying assignment for a scenario's query, then
compares the expected-value fixture's "satisfiable" field against what
the solver actually found, reading the fixture with gjson. Other
fixture fields are not compared.

Example:
  zen check sum-equals-seven --fixture testdata/sum-equals-seven.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&expectedFixture, "fixture", "", "path to a JSON fixture with the expected result")
	_ = checkCmd.MarkFlagRequired("fixture")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	s, err := lookupScenario(args[0])
	if err != nil {
		return err
	}
	if s.query == nil {
		return fmt.Errorf("scenario %q is a transform scenario, not a check scenario", s.name)
	}

	data, err := os.ReadFile(expectedFixture)
	if err != nil {
		return fmt.Errorf("reading fixture %s: %w", expectedFixture, err)
	}
	fixture := gjson.ParseBytes(data)
	wantSat := fixture.Get("satisfiable").Bool()

	facade, err := modelcheck.New(modelcheck.Options{Cfg: arbitrary.Config{Depth: cfg.Depth, Exhaustive: cfg.Exhaustive}})
	if err != nil {
		return err
	}
	_, gotSat, err := facade.Find(s.query)
	if err != nil {
		return err
	}
	if gotSat != wantSat {
		return fmt.Errorf("%s: expected satisfiable=%v, got %v", s.name, wantSat, gotSat)
	}
	fmt.Printf("%s: OK (satisfiable=%v)\n", s.name, gotSat)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/cwbudde/zen/internal/arbitrary"
	"github.com/cwbudde/zen/internal/modelcheck"
	"github.com/spf13/cobra"
)

var transformCmd = &cobra.Command{
	Use:   "transform [scenario]",
	Short: "Build a scenario's StateSetTransformer and report its image over the full state space",
	Long: `transform builds the StateSetTransformer for a built-in scenario's
function, then reports whether the image of the full input state set
under the transformer is itself the full output state set (spec.md
§4.7's forward transform over Full).

Example:
  zen transform increment`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)
}

func runTransform(_ *cobra.Command, args []string) error {
	s, err := lookupScenario(args[0])
	if err != nil {
		return err
	}
	if s.target == nil {
		return fmt.Errorf("scenario %q is not a transform scenario", s.name)
	}

	facade, err := modelcheck.New(modelcheck.Options{Cfg: arbitrary.Config{Depth: cfg.Depth, Exhaustive: cfg.Exhaustive}})
	if err != nil {
		return err
	}
	tr, err := facade.StateTransformer(s.target)
	if err != nil {
		return err
	}
	full, err := facade.Space().Full(s.sameTyp)
	if err != nil {
		return err
	}
	image, err := tr.TransformForward(full)
	if err != nil {
		return err
	}
	isFull, err := image.IsFull()
	if err != nil {
		return err
	}
	if jsonOutput {
		fmt.Printf(`{"scenario":%q,"imageIsFull":%v}`+"\n", s.name, isFull)
		return nil
	}
	fmt.Printf("%s: image of Full under the transformer is full: %v\n", s.name, isFull)
	return nil
}

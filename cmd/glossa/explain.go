package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExplainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain CODE...",
		Short: "Describe part-of-speech tag codes",
		Long: `Print a description for each tag code, one per line as CODE<TAB>DESCRIPTION.

Codes are case-sensitive. Unknown codes print "no description available";
an empty code is an error.`,
		Example: `  glossa explain VBD DT JJ
  glossa explain PROPN`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := a.tagset()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, code := range args {
				desc, err := tags.Explain(code)
				if err != nil {
					return fmt.Errorf("explain %q: %w", code, err)
				}
				fmt.Fprintf(out, "%s\t%s\n", code, desc)
			}
			return nil
		},
	}
}

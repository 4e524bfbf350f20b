package main

import (
	"fmt"
	"os"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/parc/ebnf"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "grammar",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newGrammarCheckCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Compile an EBNF grammar and report well-formedness diagnostics",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := ebnf.LoadGrammar(args[0])
			if err != nil {
				printErrors(err)
				return err
			}

			if startProduction == "" {
				return fmt.Errorf("--start is required")
			}

			compiled, err := ebnf.Compile(grammar, startProduction)
			if err != nil {
				printErrors(err)
				return err
			}

			diags := compiled.Check()
			for _, d := range diags {
				fmt.Fprintln(os.Stderr, d)
			}
			if len(diags) > 0 {
				return fmt.Errorf("grammar is ill-formed")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production")

	return cmd
}

// printErrors unwraps the unexported error-list type the ebnf package
// returns for multi-error parses.
func printErrors(err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(os.Stderr, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/parc/calc"
	"github.com/dhamidi/parc/format"
)

func newEvalCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Parse and evaluate an arithmetic expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := calc.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse expression: %w", err)
			}

			value, err := calc.Eval(expr)
			if err != nil {
				return fmt.Errorf("evaluate expression: %w", err)
			}

			switch outputFormat {
			case "json":
				enc := format.NewJSONEncoder(os.Stdout)
				return enc.Encode(map[string]any{
					"ast":   fmt.Sprint(expr),
					"value": value,
				})
			case "text":
				fmt.Printf("%s = %d\n", expr, value)
				return nil
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")

	return cmd
}

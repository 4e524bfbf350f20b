package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "parc",
		Short: "A transactional PEG parsing toolkit",
	}

	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newMatchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/parc/ebnf"
	"github.com/dhamidi/parc/format"
	"github.com/dhamidi/parc/parse"
)

func newMatchCmd() *cobra.Command {
	var (
		startProduction string
		outputFormat    string
		prefix          bool
		memoSlots       int
		verbosity       int
	)

	cmd := &cobra.Command{
		Use:           "match <grammar-file> <input-file>",
		Short:         "Match an input file against an EBNF grammar",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)
			log := commonlog.GetLogger("parc.match")

			if startProduction == "" {
				return fmt.Errorf("--start is required")
			}

			grammar, err := ebnf.LoadGrammar(args[0])
			if err != nil {
				printErrors(err)
				return err
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			text := string(data)

			compiled, err := ebnf.Compile(grammar, startProduction)
			if err != nil {
				printErrors(err)
				return err
			}
			log.Infof("compiled %d productions, start %q", len(grammar), startProduction)

			root := compiled.Root()
			var opts []parse.Option
			if prefix {
				opts = append(opts, parse.WithPrefixMatch())
			}
			var memo *parse.MemoCache
			if memoSlots > 0 {
				memo = parse.NewMemoCache(memoSlots, true)
				root = parse.Memo(root, func() parse.Memoizer { return memo })
				compiled = parse.NewGrammar(root)
			}

			res, err := compiled.Parse(parse.NewStringInput(text), opts...)
			if err != nil {
				return err
			}

			lineMap := format.NewLineMap(text)
			if memo != nil {
				log.Debugf("memoizer entries:\n%s", format.RenderMemo(memo, lineMap))
			}

			if !res.Matched {
				fmt.Fprintln(os.Stderr, format.RenderFailure(res, lineMap))
				return fmt.Errorf("no match")
			}
			log.Infof("matched %d of %d positions", res.EndPos, len([]rune(text)))

			switch outputFormat {
			case "json":
				enc := format.NewJSONEncoder(os.Stdout)
				return enc.Encode(res.Values)
			case "text":
				for _, v := range res.Values {
					fmt.Println(v)
				}
				return nil
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&prefix, "prefix", false, "accept a prefix match instead of requiring the full input")
	cmd.Flags().IntVar(&memoSlots, "memo", 0, "memoize the root parser with this many cache slots")
	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 0, "log verbosity")

	return cmd
}

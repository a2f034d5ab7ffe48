package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfmt/pkg/tokenizer"
	"github.com/urfave/cli/v3"
)

// Tokens creates the CLI command for dumping the classified token
// stream of a query. This is a debugging aid for inspecting how the
// tokenizer classifies a piece of SQL, e.g. when a keyword renders
// unexpectedly.
func Tokens() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "Dump the token stream for a query",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print tokens as structured values",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read the query from a file instead of the arguments",
			},
			&cli.BoolFlag{
				Name:  "joins-as-top-level",
				Usage: "Classify JOIN variants as top-level keywords",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query, err := tokensInput(cmd)
			if err != nil {
				return err
			}

			tokens := tokenizer.Tokenize(query, tokenizer.Options{
				JoinsAsTopLevel: cmd.Bool("joins-as-top-level"),
			})

			if cmd.Bool("pretty") {
				printer := pp.New()
				printer.SetOutput(cmd.Root().Writer)
				_, err := printer.Println(tokens)
				return errors.Wrap(err, "failed to print tokens")
			}

			for _, tok := range tokens {
				if tok.Kind == tokenizer.Whitespace {
					continue
				}
				if _, err := fmt.Fprintf(cmd.Root().Writer, "%-26s %q\n", tok.Kind, tok.Text); err != nil {
					return errors.Wrap(err, "failed to print tokens")
				}
			}
			return nil
		},
	}
}

func tokensInput(cmd *cli.Command) (string, error) {
	if path := cmd.String("file"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrapf(err, "failed to read file: %s", path)
		}
		return string(content), nil
	}
	if cmd.Args().Len() > 0 {
		return cmd.Args().First(), nil
	}
	content, err := io.ReadAll(cmd.Root().Reader)
	if err != nil {
		return "", errors.Wrap(err, "failed to read input")
	}
	return string(content), nil
}

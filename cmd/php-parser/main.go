package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v3"

	"github.com/wudi/php-parser/ast"
	phperrors "github.com/wudi/php-parser/errors"
	"github.com/wudi/php-parser/lexer"
	"github.com/wudi/php-parser/parser"
)

func main() {
	cmd := &cli.Command{
		Name:  "php-parser",
		Usage: "Parse PHP source and dump the AST",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "code",
				Aliases: []string{"r"},
				Usage:   "Parse PHP <code> without script tags",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"a"},
				Usage:   "Run an interactive parse loop",
			},
			&cli.BoolFlag{
				Name:  "tokens",
				Usage: "Print the token stream instead of the AST",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Only report success or the first parse error",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("interactive") {
		return interactive()
	}

	var source string
	switch {
	case cmd.String("code") != "":
		source = "<?php " + cmd.String("code")
	case cmd.Args().Len() > 0 && cmd.Args().First() != "-":
		data, err := os.ReadFile(cmd.Args().First())
		if err != nil {
			return err
		}
		source = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		source = string(data)
	}

	if cmd.Bool("tokens") {
		for i, tok := range lexer.Tokenize(source) {
			if tok.Type == lexer.T_EOF {
				break
			}
			fmt.Printf("%4d: %-28s %q\n", i, tok.Type, tok.Value)
		}
		return nil
	}

	program, err := parser.ParseString(source)
	if err != nil {
		return renderError(err, source)
	}
	if cmd.Bool("check") {
		fmt.Println("no syntax errors detected")
		return nil
	}
	return dump(program)
}

func interactive() error {
	rl, err := readline.New("php> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}
		if line == "" {
			continue
		}
		program, err := parser.ParseString("<?php " + line)
		if err != nil {
			fmt.Fprintln(os.Stderr, formatError(err, "<?php "+line))
			continue
		}
		if err := dump(program); err != nil {
			return err
		}
	}
}

func dump(program *ast.Program) error {
	out, err := ast.ToJSON(program)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func renderError(err error, source string) error {
	return fmt.Errorf("%s", formatError(err, source))
}

func formatError(err error, source string) string {
	if parseErr, ok := err.(*phperrors.ParseError); ok {
		return parseErr.Format(source)
	}
	return err.Error()
}

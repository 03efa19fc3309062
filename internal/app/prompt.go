package app

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// prompter reads missing form values line by line from the input.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (a *App) prompter() *prompter {
	return &prompter{scanner: bufio.NewScanner(a.in), out: a.errOut}
}

// fill asks for every field still empty, in order.
func (p *prompter) fill(fields ...promptField) error {
	for _, f := range fields {
		if *f.dst != "" {
			continue
		}
		fmt.Fprintf(p.out, "%s: ", f.label)
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return fmt.Errorf("failed to read %s: %w", f.label, err)
			}
			return fmt.Errorf("%w: missing %s", ErrUsage, f.label)
		}
		*f.dst = strings.TrimSpace(p.scanner.Text())
	}
	return nil
}

type promptField struct {
	label string
	dst   *string
}

func ask(label string, dst *string) promptField {
	return promptField{label: label, dst: dst}
}

func parseFlags(name string, args []string, errOut io.Writer, define func(fs *flag.FlagSet)) ([]string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errOut)
	define(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return fs.Args(), nil
}

// subcommand splits off the first argument when it is not a flag.
func subcommand(args []string, fallback string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return fallback, args
	}
	return args[0], args[1:]
}

// leadingID takes the todo id that must follow id-addressed subcommands.
func leadingID(args []string) (int64, []string, error) {
	if len(args) == 0 {
		return 0, nil, fmt.Errorf("%w: a todo id is required", ErrUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, nil, fmt.Errorf("%w: invalid todo id %q", ErrUsage, args[0])
	}
	return id, args[1:], nil
}

func noArgs(name string, rest []string) error {
	if len(rest) > 0 {
		return fmt.Errorf("%w: unexpected arguments to %s: %s", ErrUsage, name, strings.Join(rest, " "))
	}
	return nil
}

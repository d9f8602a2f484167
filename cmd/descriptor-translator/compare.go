package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"descriptor-translator/internal/compare"
)

type compareOptions struct {
	generated string
	expected  string
	format    string
}

func newCompareCmd(a *app) *cobra.Command {
	var opts compareOptions

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a generated descriptor with the expected one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.compare(opts)
		},
	}

	cmd.Flags().StringVar(&opts.generated, "generated", "", "Generated descriptor")
	cmd.Flags().StringVar(&opts.expected, "expected", "", "Expected descriptor")
	cmd.Flags().StringVar(&opts.format, "type", "yaml", "Descriptor serialization: yaml or json")

	_ = cmd.MarkFlagRequired("generated")
	_ = cmd.MarkFlagRequired("expected")

	return cmd
}

func (a *app) compare(opts compareOptions) error {
	expected, err := compare.LoadFile(opts.expected, opts.format)
	if err != nil {
		return err
	}

	generated, err := compare.LoadFile(opts.generated, opts.format)
	if err != nil {
		return err
	}

	engine := compare.New(compare.Options{
		OrderlessKeys: a.cfg.Compare.OrderlessKeys,
		Debug:         a.debug,
		Log:           a.log,
	})

	report := engine.Compare(expected, generated)
	if !report.Equal() {
		fmt.Fprintf(a.stderr, "ValueError: %s does not match %s: %s\n", opts.generated, opts.expected, report)
		return &exitError{code: 1}
	}

	fmt.Fprintln(a.stdout, report)

	return nil
}

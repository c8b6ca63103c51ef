// SPDX-License-Identifier: MIT

// Command mabipack packs, extracts, and lists Mabinogi ".pack" containers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mabipack "github.com/regomne/mabi-pack"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Printf("Err: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mabipack",
		Short:         "Mabinogi pack utilities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newPackCmd(), newExtractCmd(), newListCmd())

	return root
}

// newPackCmd builds the "pack" subcommand.
func newPackCmd() *cobra.Command {
	var (
		input   string
		output  string
		version string
	)

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Create a pack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := mabipack.ParseVersionKey(version)
			if err != nil {
				return err
			}

			inputs, err := mabipack.InputsFromDir(input, mabipack.WalkOptions{})
			if err != nil {
				return err
			}

			_, err = mabipack.PackFile(cmd.Context(), output, inputs, key, mabipack.PackOptions{})
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input folder to pack")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output .pack file name")
	cmd.Flags().StringVarP(&version, "key-version", "k", "", "version key (also used as the keystream seed)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagRequired("key-version")

	return cmd
}

// newExtractCmd builds the "extract" subcommand.
func newExtractCmd() *cobra.Command {
	var (
		input   string
		output  string
		filters []string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a pack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := mabipack.Open(input)
			if err != nil {
				return err
			}
			defer func() { _ = r.Close() }()

			return r.Extract(cmd.Context(), output, mabipack.ExtractOptions{
				Filters: filters,
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input pack name to extract")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output folder")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "extract filter in regexp, multiple occurrences mean OR")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// newListCmd builds the "list" subcommand.
func newListCmd() *cobra.Command {
	var (
		input       string
		output      string
		withVersion bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Output the file list of a pack",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			entries, err := mabipack.ListEntries(input)
			if err != nil {
				return err
			}

			dst := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				dst = f
			}

			return mabipack.List(dst, entries, mabipack.ListOptions{WithVersion: withVersion})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input pack name to list")
	cmd.Flags().StringVarP(&output, "output", "o", "", "list file name, stdout if not set")
	cmd.Flags().BoolVar(&withVersion, "with-version", false, "print the version of every file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

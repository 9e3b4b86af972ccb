package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dhamidi/jsig/java"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	var context int

	cmd := &cobra.Command{
		Use:   "diff <old.class> <new.class>",
		Short: "Show how the generic API of a class changed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := runDiff(cmd.OutOrStdout(), args[0], args[1], context)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.ErrOrStderr(), "no differences")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&context, "context", "U", 3, "lines of context")

	return cmd
}

// runDiff writes a unified diff of the line rendering of two class files
// and reports whether they differ.
func runDiff(w io.Writer, oldPath, newPath string, context int) (bool, error) {
	a, err := lineRendering(oldPath)
	if err != nil {
		return false, err
	}
	b, err := lineRendering(newPath)
	if err != nil {
		return false, err
	}
	if a == b {
		return false, nil
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: oldPath,
		ToFile:   newPath,
		Context:  context,
	}
	return true, difflib.WriteUnifiedDiff(w, diff)
}

func lineRendering(path string) (string, error) {
	model, err := java.ClassModelFromFile(path)
	if err != nil {
		return "", fmt.Errorf("parse class file: %w", err)
	}
	var buf bytes.Buffer
	if err := encodeModel(&buf, "line", model); err != nil {
		return "", err
	}
	return buf.String(), nil
}

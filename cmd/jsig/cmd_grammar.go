package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jsig/grammar"
	"github.com/dhamidi/jsig/signature"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the signature grammar in EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), grammar.Source)
			return err
		},
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarMatchCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file (default: the signature grammar)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if len(args) == 0 {
				_, err = grammar.Parse("signature.ebnf", strings.NewReader(grammar.Source), start)
			} else {
				_, err = grammar.LoadFile(args[0], start)
			}
			for _, e := range grammar.Errors(err) {
				fmt.Fprintln(cmd.ErrOrStderr(), e)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&start, "start", grammar.Root, "start production for verification (empty: only check syntax)")

	return cmd
}

func newGrammarMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <class|field|method|constructor> <signature>",
		Short: "Check a signature against both the grammar and the parser",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := signature.ParseKind(args[0])
			if err != nil {
				return err
			}
			return runMatch(cmd.OutOrStdout(), kind, args[1])
		},
	}
}

var errDisagree = errors.New("grammar and parser disagree")

// runMatch reports whether the grammar and the parser accept sig. It
// fails only when they disagree.
func runMatch(w io.Writer, kind signature.Kind, sig string) error {
	g, err := grammar.Signatures()
	if err != nil {
		return err
	}
	start, err := grammar.Production(kind.String())
	if err != nil {
		return err
	}

	matchErr := grammar.Recognize(g, start, sig)
	_, parseErr := signature.Parse(sig, kind)

	var me *grammar.MatchError
	if errors.As(matchErr, &me) {
		fmt.Fprintf(w, "grammar\terror at offset %d\n", me.Offset)
	} else {
		fmt.Fprintf(w, "grammar\tok\n")
	}
	var fe *signature.FormatError
	if errors.As(parseErr, &fe) {
		fmt.Fprintf(w, "parser\terror at offset %d: %s\n", fe.Offset, fe.Msg)
	} else {
		fmt.Fprintf(w, "parser\tok\n")
	}

	if (matchErr == nil) != (parseErr == nil) {
		return fmt.Errorf("%w on %s signature %q", errDisagree, kind, sig)
	}
	return nil
}

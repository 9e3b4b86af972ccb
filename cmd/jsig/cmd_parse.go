package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jsig/signature"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <class|field|method|constructor> <signature>",
		Short: "Parse a signature and print its Java and canonical forms",
		Example: `  jsig parse method '<T:Ljava/lang/Object;>(Ljava/util/List<+TT;>;)TT;'
  jsig parse class 'Ljava/lang/Object;Ljava/lang/Comparable<Ljava/lang/String;>;'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := signature.ParseKind(args[0])
			if err != nil {
				return err
			}
			return runParse(cmd.OutOrStdout(), kind, args[1])
		},
	}
}

func runParse(w io.Writer, kind signature.Kind, sig string) error {
	decl, err := signature.Parse(sig, kind)
	if err != nil {
		var format *signature.FormatError
		if errors.As(err, &format) {
			fmt.Fprintf(w, "%s\n%s^ %s\n", sig, strings.Repeat(" ", format.Offset), format.Msg)
		}
		return err
	}
	fmt.Fprintf(w, "kind\t%s\n", kind)
	fmt.Fprintf(w, "java\t%s\n", signature.Describe(decl))
	fmt.Fprintf(w, "canonical\t%s\n", signature.PrintDeclaration(decl))
	return nil
}

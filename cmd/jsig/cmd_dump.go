package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/dhamidi/jsig/format"
	"github.com/dhamidi/jsig/java"
	"github.com/spf13/cobra"
)

func newDumpCmd(opts *options) *cobra.Command {
	var dumpFormat string

	cmd := &cobra.Command{
		Use:   "dump <file.class | class name>...",
		Short: "Dump the generic API of classes",
		Long: `Dump the generic API of classes. Arguments ending in .class are read
directly; other arguments are binary class names looked up on the class path.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				opts.Format = dumpFormat
			}
			enc, err := format.New(opts.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runDump(enc, opts.ClassPath, args)
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (line, json, java)")

	return cmd
}

func runDump(enc format.Encoder, classPath []string, args []string) error {
	var loader *java.ClassPath
	for _, arg := range args {
		var model *java.ClassModel
		if filepath.Ext(arg) == ".class" {
			m, err := java.ClassModelFromFile(arg)
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}
			model = m
		} else {
			if loader == nil {
				cp, err := java.NewClassPath(nil, classPath...)
				if err != nil {
					return err
				}
				defer cp.Close()
				loader = cp
			}
			c, err := loader.LoadClass(arg)
			if err != nil {
				return err
			}
			model = java.ClassModelOf(c)
		}
		if err := enc.Encode(model); err != nil {
			return fmt.Errorf("encode %s: %w", model.Name, err)
		}
	}
	return nil
}

func encodeModel(w io.Writer, name string, model *java.ClassModel) error {
	enc, err := format.New(name, w)
	if err != nil {
		return err
	}
	return enc.Encode(model)
}

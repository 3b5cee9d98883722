package main

import (
	"fmt"

	"github.com/dhamidi/cpdump/classfile"
	"github.com/dhamidi/cpdump/format"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var (
		dumpFormat string
		entry      string
	)

	cmd := &cobra.Command{
		Use:   "cpdump <file>",
		Short: "Print the constant pool of a class file like javap -v",
		Long: `Print the version header and constant pool of a .class file.

With --entry, <file> is a jar or zip archive and the named class inside it
is printed instead. Entries that cannot be rendered are reported on stderr
and skipped; the listing continues.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := load(args[0], entry)
			if err != nil {
				return err
			}

			var enc format.Encoder
			switch dumpFormat {
			case "text":
				enc = format.NewTextEncoder(cmd.OutOrStdout(), format.WithDiagnostics(cmd.ErrOrStderr()))
			case "json":
				enc = format.NewJSONEncoder(cmd.OutOrStdout(), format.WithDiagnostics(cmd.ErrOrStderr()))
			default:
				return fmt.Errorf("unknown format: %s (expected text or json)", dumpFormat)
			}

			if err := enc.Encode(cf); err != nil {
				return fmt.Errorf("encode %s: %w", dumpFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().StringVarP(&entry, "entry", "e", "", "class to read from the archive given as <file>")

	return cmd
}

func load(path, entry string) (*classfile.ClassFile, error) {
	if entry != "" {
		cf, err := classfile.ParseArchiveEntry(path, entry)
		if err != nil {
			return nil, fmt.Errorf("parse %s in %s: %w", entry, path, err)
		}
		return cf, nil
	}
	cf, err := classfile.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse class file: %w", err)
	}
	return cf, nil
}

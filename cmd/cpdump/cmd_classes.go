package main

import (
	"fmt"

	"github.com/dhamidi/cpdump/classfile"
	"github.com/spf13/cobra"
)

func newClassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes <archive>",
		Short: "List the class files inside a jar or zip archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := classfile.ArchiveClasses(args[0])
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

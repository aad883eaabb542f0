package main

import (
	"github.com/dupfiles/treemerge/internal/hashalgo"
	"github.com/spf13/cobra"
)

var hashAlgosCmd = &cobra.Command{
	Use:   "hash-algos",
	Short: "List the available content hash algorithms",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range hashalgo.Names() {
			mark := "  "
			if name == hashalgo.DefaultName {
				mark = "* "
			}
			w.Printfln("%s%s", mark, name)
		}
		exitCode = 0
	},
}

func init() {
	rootCmd.AddCommand(hashAlgosCmd)
}

package main

import (
	"github.com/dupfiles/treemerge/internal/hashalgo"
	"github.com/spf13/cobra"
)

const version = "1.0.0"
const specVersion = "1.0.0"

const versionTemplate = `version:           %s
spec implemented:  %s

hash algorithms:
(* denotes default algorithm)
`

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version metadata and supported hash algorithms",
	Run: func(cmd *cobra.Command, args []string) {
		w.Printf(versionTemplate, version, specVersion)
		for _, name := range hashalgo.Names() {
			mark := ""
			if name == hashalgo.DefaultName {
				mark = " *"
			}
			w.Printfln("\t%s%s", name, mark)
		}
		exitCode = 0
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

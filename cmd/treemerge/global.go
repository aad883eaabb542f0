package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// <global-variables>
//   <subset purpose="used by 'cobra' flags shared across subcommands">
var argConfig string
var argJSONOutput bool

//   </subset>
//   <subset purpose="used for passing values between 'cobra' Run functions and main">
var w Output = &PlainOutput{Device: os.Stdout}
var log = logrus.WithField("component", "cli")
var exitCode int
var cmdError error

// </subset>

var rootCmd = &cobra.Command{
	Use:   "treemerge",
	Short: "Find duplicate directory subtrees across one or more filesystem roots",
	Long: `treemerge walks one or more directory trees, content-hashes every file,
and folds digests bottom-up to find whole directories that are byte-for-byte
duplicates of each other. Only the topmost duplicate directory in each
equivalent group is reported, never its duplicated descendants.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&argConfig, "config", EnvOr("TREEMERGE_CONFIG", ""), "path to a TOML config file")
	rootCmd.PersistentFlags().BoolVar(&argJSONOutput, "json", false, "accepted but has no effect: output is always plain text")
}

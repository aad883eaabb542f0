package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	err := rootCmd.Execute()
	if err == nil {
		err = cmdError
	}
	if err != nil {
		logrus.WithError(err).Error("command failed")
		if exitCode == 0 {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

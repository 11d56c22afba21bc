package main

import (
	"github.com/sirupsen/logrus"

	"github.com/adagate/ada-wallet-gateway/cmd"
	cmdUtils "github.com/adagate/ada-wallet-gateway/cmd/utils"
)

// Version is the official version of this application.
const Version = "1.2.0"

// GitCommit is populated at build time by
// go build -ldflags "-X main.GitCommit=$GIT_COMMIT"
var GitCommit string

func main() {
	preConfigureLogger()

	err := cmdUtils.LoadEnvFile()
	if err != nil {
		logrus.Fatalf("Error loading env file: %s", err.Error())
	}

	rootCmd := cmd.SetupCLI(Version, GitCommit)
	err = rootCmd.Execute()
	if err != nil {
		logrus.Fatalf("Error executing root command: %s", err.Error())
	}
}

// preConfigureLogger will set the log level to Trace, so logs works from the
// start. This will eventually be overwritten in cmd/root.go
func preConfigureLogger() {
	logrus.SetLevel(logrus.TraceLevel)
}

package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/hiview/internal/app"
	"github.com/atomicstack/hiview/internal/config"
	"github.com/atomicstack/hiview/internal/logging"
)

// hiview browses the keys and values of an offline Windows registry hive.
func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Package main is the entry point for the soundrip application.
package main

import (
	"github.com/samber/lo"
	"github.com/soundrip-cli/soundrip/cmd"
	"github.com/soundrip-cli/soundrip/config"
	"github.com/soundrip-cli/soundrip/internal/cache"
	"github.com/soundrip-cli/soundrip/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Initialize asynchronous background cache maintenance.
	go cache.CollectGarbage()

	cmd.Execute()
}

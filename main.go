package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"

	"galeria-cuadros/cmd"
)

const version = "0.1.0"

// shutdownSignals cancel the command context; serve drains on either
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	root := cmd.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(shutdownSignals...),
	); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"

	"k8s.io/klog/v2"

	"github.com/mihai-snyk/genetic-search/cmd/evolve/app"
)

func main() {
	command := app.NewEvolveCommand()
	err := command.ExecuteContext(context.Background())
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

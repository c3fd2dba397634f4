// Command docchat answers questions about your documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driving/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.SetWiring(cli.Wiring{
		Settings: newSettingsService,
		Services: newServices,
	})

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

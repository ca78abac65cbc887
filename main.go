package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/zeu5/coloring-rl/commands"
)

// main entry point to all the training runs
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCommand := commands.GetRootCommand()
	if err := rootCommand.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

// chatstream CLI - chat completions from the command line.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/petal-labs/chatstream/cli/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := commands.NewApp().Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

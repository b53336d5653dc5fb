package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ncobase/blogclient/cmd/blog/commands"
	"github.com/ncobase/blogclient/ecode"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", ecode.Message(err))
		os.Exit(1)
	}
}

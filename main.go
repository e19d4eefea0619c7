package main

import (
	"context"
	"os"
	"os/signal"
	_ "time/tzdata"

	"github.com/gaurav-prasanna/flyerpipe/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cmd.ExecuteContext(ctx)
}

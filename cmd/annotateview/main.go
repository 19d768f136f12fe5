package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/chirag807/pdf-annotation-frontend/pkg/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Main(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

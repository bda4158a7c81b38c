package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/evanterry/surveyor/pkg/cli"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Optional .env for local runs; variables already set in the environment win.
	_ = godotenv.Load()

	// Ctrl-C cancels in-flight requests instead of killing the process mid-write.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.Options{Version: Version}, os.Args[1:])
	stop()
	os.Exit(code)
}

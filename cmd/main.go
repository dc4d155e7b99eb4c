package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yungbote/listing-reel-backend/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Start()
	err = a.Run(ctx)
	if err != nil {
		a.Log.Error("server exited", "error", err)
	}
	a.Close()
	if err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log"
	"os"

	"paginated-user-service/cmd/api/app"
	"paginated-user-service/cmd/api/server"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := server.WithSignal(context.Background())
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		log.Printf("application failed to start: %v", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		a.Logger.Error("application exited with error", zap.Error(err))
		stop()
		os.Exit(1)
	}
}

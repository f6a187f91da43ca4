package main

import (
	"context"
	"log/slog"
	"os"

	"escapelog-backend/lib/telemetry"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	err := telemetry.SetupFromEnv(ctx, "crawl-server")
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("no telemetry.json5 found, exporters are disabled")
			return
		}
		slog.Error("setup telemetry", "err", err)
		os.Exit(1)
	}

	go func() {
		<-ctx.Done()
		err := telemetry.Shutdown(context.Background())
		if err != nil {
			slog.Error("shutdown telemetry", "err", err)
		}
	}()

	telemetry.InstrumentPerfStats(ctx)
}

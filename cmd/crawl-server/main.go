package main

import (
	"flag"
	"log/slog"
	"net/http"

	"escapelog-backend/lib/blobstore"
	"escapelog-backend/lib/configutil"
	"escapelog-backend/lib/serviceutil"
	"escapelog-backend/lib/sqliteutil"
	"escapelog-backend/services/catalog/db"
	"escapelog-backend/services/crawler"

	"github.com/mazen160/go-random"
)

type BlobConfig struct {
	Directory string `json:"directory"`
	BaseURL   string `json:"base_url"`
}

type Config struct {
	Port        int                   `json:"port"`
	Database    string                `json:"database"`
	AccessToken string                `json:"access_token"`
	Blob        BlobConfig            `json:"blob"`
	Report      crawler.ReportOptions `json:"report"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}

	database, err := sqliteutil.OpenDB(db.Schema, cfg.Database)
	if err != nil {
		serviceutil.Fatal("open database", err)
	}

	var blob blobstore.Store
	if cfg.Blob.Directory != "" {
		blob, err = blobstore.NewFilesystemStore(cfg.Blob.Directory, cfg.Blob.BaseURL)
		if err != nil {
			serviceutil.Fatal("open blob store", err)
		}
	} else {
		slog.Warn("no blob directory configured, poster ingestion is disabled")
	}

	token := cfg.AccessToken
	if token == "" {
		token, err = random.String(32)
		if err != nil {
			serviceutil.Fatal("generate access token", err)
		}
		slog.Info("no access token configured, generated one", "token", token)
	}

	svc := crawler.NewService(database, crawler.Options{
		Blob:   blob,
		Report: cfg.Report,
	})

	mux := http.NewServeMux()
	svc.RegisterRoutes(mux)

	go serviceutil.StartHttpServer(cfg.Port, serviceutil.RequireToken(token, mux))
	<-ctx.Done()
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/remiedy/catering/config"
	"github.com/remiedy/catering/internal/adminapi"
	"github.com/remiedy/catering/internal/app"
	"github.com/remiedy/catering/internal/storefront"
	"github.com/remiedy/catering/internal/webserver"
)

var (
	configFile = flag.String("c", "catering.yml", "config file path")
	initDB     = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
	showVer    = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("catering", version)
		return
	}

	_ = godotenv.Load()
	cfg := config.LoadConfig(*configFile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDB {
		application.InitDb()
		zap.L().Info("database schema recreated")
		return
	}

	ws := webserver.Init(cfg, application.DB(), application.CartStore())
	storefront.Register()
	adminapi.Register()

	go func() {
		if err := ws.Start(); err != nil {
			zap.L().Fatal("web server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ws.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("web server shutdown error", zap.Error(err))
	}
	zap.L().Info("catering server stopped")
}

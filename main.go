package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"studybyte/config"
	"studybyte/database"
	"studybyte/logger"
	"studybyte/routers"
	"studybyte/utils"
)

func main() {
	cfg, warnings, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer appLog.Sync()
	for _, w := range warnings {
		appLog.Warn(w)
	}

	db, err := database.ConnectDb(cfg, appLog)
	if err != nil {
		appLog.Fatal("failed to connect to the database", "driver", cfg.DBDriver, "error", err)
	}

	issuer := routers.NewIssuer(cfg, db, appLog)
	app := routers.NewApp(cfg, db, issuer, appLog)

	audit, err := utils.InitializeCertificateAuditScheduler(cfg.AuditSchedule, issuer, appLog)
	if err != nil {
		appLog.Fatal("invalid certificate audit schedule", "schedule", cfg.AuditSchedule, "error", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		appLog.Info("shutting down")
		<-audit.Stop().Done()
		if err := app.Shutdown(); err != nil {
			appLog.Error("server shutdown failed", "error", err)
		}
	}()

	appLog.Info("server is running", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		appLog.Fatal("server stopped", "error", err)
	}
}

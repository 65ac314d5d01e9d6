package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wtg/config"
	"wtg/controllers"
	dbpkg "wtg/db"
	"wtg/router"
	"wtg/workers"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "config.json", "caminho do arquivo de configuração")
	flag.Parse()

	cfg := config.Get(*configPath)
	dbpkg.SetConfigurations(cfg)
	controllers.SetSecurityConfig(cfg.Security)

	database, err := dbpkg.Connect()
	if err != nil {
		log.Fatalf("falha ao conectar no banco: %v", err)
	}
	defer database.Close()

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	router.Initialize(r)

	// Reconciler de planos: instância única por deploy (sem lock distribuído).
	interval := time.Duration(cfg.Scheduler.ReconcileIntervalMinutes) * time.Minute
	stopReconciler := workers.StartPlanReconciler(database, interval)

	srv := &http.Server{
		Addr:              ":" + cfg.ApiPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("wtg listening on :%s", cfg.ApiPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Encerrando...")
	stopReconciler()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

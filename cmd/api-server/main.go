package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"promohub/internal/catalog"
	"promohub/internal/live"
	"promohub/internal/promo"
	"promohub/internal/source"
	"promohub/internal/whatsapp"
	"promohub/pkg/utils"
)

func main() {
	cfg := utils.LoadServerConfig()

	var src source.Source
	if cfg.SourceURL != "" {
		src = source.NewHTTPSource(cfg.SourceURL)
	} else {
		src = source.NewFileSource(cfg.SourceFile)
	}

	store := catalog.NewStore()
	loader := catalog.NewLoader(src, store)

	// Initial load. A failure is not fatal: the API answers 503 until a
	// refresh succeeds, which is the storefront's "reload to retry" rule.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := loader.Load(loadCtx); err != nil {
		log.Printf("initial catalog load failed: %v", err)
	}
	cancelLoad()

	renderer := promo.Renderer{Links: whatsapp.Builder{Number: cfg.WhatsAppNumber}}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := live.NewHub(store, renderer, cfg.PageSize)
	router.GET("/ws", live.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		snap, ok := store.Current()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"ws_clients": stats.Clients,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"load_id":    snap.LoadID.String(),
			"loaded_at":  snap.LoadedAt,
			"ativas":     len(snap.Active),
			"ws_clients": stats.Clients,
		})
	})

	handler := promo.NewHandler(store, loader, renderer, cfg.PageSize)
	handler.RegisterRoutes(router.Group("/promocoes"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	tickerCtx, cancelTicker := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.RunTicker(tickerCtx, cfg.TickInterval)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP API server listening on %s", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down")
	cancelTicker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("server stopped")
}

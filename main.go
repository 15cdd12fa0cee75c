package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/slapshot-data/xgoal.report/internal/analysis"
	"github.com/slapshot-data/xgoal.report/internal/api"
	"github.com/slapshot-data/xgoal.report/internal/rink"
	"github.com/slapshot-data/xgoal.report/internal/shots"
	"github.com/slapshot-data/xgoal.report/internal/surface"
)

var (
	listen = flag.String("listen", ":8080", "Listen address")
	dbFile = flag.String("db", "shots.db", "Path to the shots sqlite database")
	season = flag.Int("season", 2023, "Season to analyse")
	sigma  = flag.Float64("sigma", 3, "Gaussian smoothing sigma in grid cells")
	width  = flag.Int("grid-width", rink.DefaultWidthSamples, "Grid samples along x")
	height = flag.Int("grid-height", rink.DefaultHeightSamples, "Grid samples along y")
)

func main() {
	flag.Parse()

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	store, err := shots.OpenStore(*dbFile)
	if err != nil {
		log.Fatalf("Failed to open shot store: %v", err)
	}
	defer store.Close()

	grid := rink.NewGrid(0, rink.BoardsX, rink.HalfRinkHeight, *width, *height)
	est := surface.NewEstimator()
	est.Sigma = *sigma

	analyzer := analysis.NewAnalyzer(store, store, grid, est, *season)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(api.NewServer(analyzer).ServeMux()),
	}

	go func() {
		log.Printf("Serving xGoal surfaces for season %d on %s", *season, *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Printf("Graceful shutdown complete")
}

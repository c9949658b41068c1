package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-geocoder/api"
	"github.com/gcbaptista/go-geocoder/config"
	"github.com/gcbaptista/go-geocoder/geo"
	"github.com/gcbaptista/go-geocoder/hierarchyio"
)

func main() {
	var (
		help        = flag.Bool("help", false, "Show help message")
		version     = flag.Bool("version", false, "Show version information")
		hierarchy   = flag.String("hierarchy", "", "Path to the hierarchy JSON file")
		loadThreads = flag.Int("load-threads", 0, "Worker goroutines used while building the index (default: number of CPUs)")
		port        = flag.String("port", "8080", "Port to run the server on")
		query       = flag.String("query", "", "If set, run one query against the loaded hierarchy and print the results instead of starting a server")
	)

	flag.Parse()

	if *help {
		fmt.Printf("Hierarchical Geocoder - decomposes free-text queries into a geographic hierarchy\n\n")
		fmt.Printf("Usage: %s -hierarchy <path> [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s -hierarchy world.json                       # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s -hierarchy world.json -port 9000             # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s -hierarchy world.json -query \"paris france\"  # Run one query and exit\n", os.Args[0])
		return
	}

	if *version {
		fmt.Printf("Hierarchical Geocoder v1.0.0\n")
		return
	}

	if *hierarchy == "" {
		fmt.Fprintln(os.Stderr, "-hierarchy is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Config{
		HierarchyPath: *hierarchy,
		LoadThreads:   *loadThreads,
		Port:          *port,
	}
	cfg.ApplyDefaults()
	if problems := cfg.Validate(); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, "config:", p)
		}
		os.Exit(2)
	}

	log.Printf("Loading hierarchy from: %s", cfg.HierarchyPath)
	h, err := hierarchyio.LoadFile(cfg.HierarchyPath)
	if err != nil {
		log.Fatalf("Failed to load hierarchy: %v", err)
	}
	log.Printf("Loaded %d hierarchy entries", h.Len())

	geocoder := geo.NewGeocoderWithBeamSize(h, cfg.LoadThreads, cfg.BeamSize)

	if *query != "" {
		for _, r := range geocoder.ProcessQuery(*query) {
			fmt.Printf("%s\t%.4f\n", r.OsmId, r.Certainty)
		}
		return
	}

	router := gin.Default()
	api.SetupRoutes(router, geocoder, cfg.MaxResults)

	log.Printf("Starting server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

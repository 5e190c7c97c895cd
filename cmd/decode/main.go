// Command decode runs the graph-based spot decoding pipeline over a JSON
// file of raw candidate detections and writes the decoded sequences as JSON,
// optionally persisting the run to a SQLite database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gapartel/starfish/internal/config"
	"github.com/gapartel/starfish/internal/decode"
	"github.com/gapartel/starfish/internal/seqdb"
	"github.com/gapartel/starfish/internal/spatial"
	"github.com/gapartel/starfish/internal/spots"
	"github.com/gapartel/starfish/internal/version"
)

var (
	spotsPath  = flag.String("spots", "", "JSON file of raw spot detections (required)")
	configPath = flag.String("config", "", "JSON decode config file")
	outPath    = flag.String("out", "", "Output JSON file (default stdout)")
	dbPath     = flag.String("db", "", "SQLite database to persist the run to")

	searchRadius    = flag.Float64("search-radius", 0, "Max inter-round edge distance (overrides config)")
	searchRadiusMax = flag.Float64("search-radius-max", 0, "Max repair edge distance (overrides config)")
	lambda          = flag.Float64("lambda", 0, "Quality weighting factor (overrides config)")
	mergeRadius     = flag.Float64("merge-radius", 0, "Intra-round merge distance (overrides config)")
	workers         = flag.Int("workers", 0, "Decode worker pool size (overrides config)")
	showVersion     = flag.Bool("version", false, "Print version and exit")
)

// rawSpotJSON is the input wire format: one candidate detection per entry.
type rawSpotJSON struct {
	Round     int     `json:"round"`
	Channel   int     `json:"channel"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Intensity float64 `json:"intensity"`
}

func loadRawSpots(path string) ([]spots.RawSpot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spots file: %w", err)
	}
	var wire []rawSpotJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parse spots file %s: %w", path, err)
	}
	raw := make([]spots.RawSpot, len(wire))
	for i, w := range wire {
		raw[i] = spots.RawSpot{
			Round:     w.Round,
			Channel:   w.Channel,
			Pos:       spatial.Point{w.X, w.Y, w.Z},
			Intensity: w.Intensity,
		}
	}
	return raw, nil
}

// buildConfig loads the config file if given and layers any explicitly set
// flags on top. Validation happens in decode.NewDecoder.
func buildConfig() (*config.DecodeConfig, error) {
	cfg := &config.DecodeConfig{}
	if *configPath != "" {
		loaded, err := config.LoadDecodeConfig(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "search-radius":
			cfg.SearchRadius = searchRadius
		case "search-radius-max":
			cfg.SearchRadiusMax = searchRadiusMax
		case "lambda":
			cfg.Lambda = lambda
		case "merge-radius":
			cfg.MergeRadius = mergeRadius
		case "workers":
			cfg.Workers = workers
		}
	})
	return cfg, nil
}

func writeResult(res *decode.Result, path string) error {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	out = append(out, '\n')
	if path == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Printf("decode %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}
	if *spotsPath == "" {
		flag.Usage()
		log.Fatal("missing required -spots")
	}

	cfg, err := buildConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	decoder, err := decode.NewDecoder(cfg)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	raw, err := loadRawSpots(*spotsPath)
	if err != nil {
		log.Fatalf("spots: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := decoder.Run(ctx, raw)
	if err != nil {
		log.Fatalf("decode: %v", err)
	}

	if *dbPath != "" {
		db, err := seqdb.Open(*dbPath)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer db.Close()
		if err := db.SaveRun(ctx, res); err != nil {
			log.Fatalf("db: %v", err)
		}
		log.Printf("saved run %s to %s", res.RunID, *dbPath)
	}

	if err := writeResult(res, *outPath); err != nil {
		log.Fatalf("write: %v", err)
	}
}

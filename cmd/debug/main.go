package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/galaxy/internal/config"
	"github.com/VoidMesh/galaxy/internal/db"
	"github.com/VoidMesh/galaxy/internal/display"
	"github.com/VoidMesh/galaxy/internal/logging"
	"github.com/VoidMesh/galaxy/internal/params"
	"github.com/VoidMesh/galaxy/internal/random"
	"github.com/VoidMesh/galaxy/internal/scene"
)

func main() {
	defaults := params.Defaults()

	dbPath := flag.String("db", "./galaxy.db", "Path to the SQLite database (only read with -preset)")
	preset := flag.String("preset", "", "Start from a saved preset instead of the defaults")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	galaxySeed := flag.Int64("seed", 0, "Galaxy seed (0 picks one from the clock)")
	starsSeed := flag.Int64("stars-seed", 0, "Star field seed (0 picks one from the clock)")

	count := flag.Int("count", defaults.Count, "Galaxy point count")
	radius := flag.Float64("radius", defaults.Radius, "Galaxy radius")
	branches := flag.Int("branches", defaults.Branches, "Number of spiral arms")
	spin := flag.Float64("spin", defaults.Spin, "Arm twist per unit radius")
	randomness := flag.Float64("randomness", defaults.Randomness, "Jitter amplitude")
	minRandomness := flag.Float64("min-randomness", defaults.MinRandomness, "Jitter floor at the rim")
	scatter := flag.Float64("scatter", defaults.Scatter, "Jitter concentration exponent")
	inside := flag.String("inside", defaults.InsideColor, "Galaxy core color")
	outside := flag.String("outside", defaults.OutsideColor, "Galaxy rim color")
	stars := flag.Int("stars", defaults.StarsCount, "Star field point count")
	starsRadius := flag.Float64("stars-radius", defaults.StarsRadius, "Star field cube edge")
	flag.Parse()

	logger := logging.InitLogger(logging.Options{Level: *logLevel})
	log.SetDefault(logger)

	initial := defaults
	if *preset != "" {
		p, err := loadPreset(*dbPath, *preset)
		if err != nil {
			log.Fatal("Failed to load preset", "error", err, "preset", *preset)
		}
		initial = p.Parameters
	}

	surface, err := params.NewSurface(initial, logger)
	if err != nil {
		log.Fatal("Invalid starting parameters", "error", err)
	}

	// only flags given on the command line override the starting set
	var patch params.Patch
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "count":
			patch.Count = count
		case "radius":
			patch.Radius = radius
		case "branches":
			patch.Branches = branches
		case "spin":
			patch.Spin = spin
		case "randomness":
			patch.Randomness = randomness
		case "min-randomness":
			patch.MinRandomness = minRandomness
		case "scatter":
			patch.Scatter = scatter
		case "inside":
			patch.InsideColor = inside
		case "outside":
			patch.OutsideColor = outside
		case "stars":
			patch.StarsCount = stars
		case "stars-radius":
			patch.StarsRadius = starsRadius
		}
	})
	if _, err := surface.Apply(patch); err != nil {
		log.Fatal("Invalid parameters", "error", err)
	}

	registry := display.NewRegistry(logger)
	sc := scene.New(surface, registry, random.NewSource(*galaxySeed), random.NewSource(*starsSeed), logger)
	defer sc.Close()

	start := time.Now()
	if err := sc.Start(); err != nil {
		log.Error("Generation failed", "error", err)
		os.Exit(1)
	}
	log.Info("Generated point clouds", "duration", time.Since(start))

	for _, name := range sc.Names() {
		snap, err := sc.Snapshot(name)
		if err != nil {
			log.Error("Failed to read cloud", "error", err, "cloud", name)
			continue
		}
		fmt.Printf("%-7s handle=%s points=%d\n", snap.Name, snap.Handle, snap.Stats.Count)
		fmt.Printf("        bounds  min=%v max=%v\n", snap.Stats.Min, snap.Stats.Max)
		fmt.Printf("        colors  min=%v max=%v\n", snap.Stats.ColorMin, snap.Stats.ColorMax)
	}
}

func loadPreset(path, name string) (*db.Preset, error) {
	database, err := db.Open(config.DatabaseConfig{
		Path:            path,
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		return nil, err
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.NewPresetStore(database).GetPreset(ctx, name)
}

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-world/model"
	"github.com/sheikhrachel/gol-world/parser"
	"github.com/sheikhrachel/gol-world/utils"
)

// game bundles the state of one simulation run
type game struct {
	config   utils.Config
	world    *model.World
	snapshot model.SnapshotRenderer
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	history  model.History
	verifier *model.Verifier
}

// initializeGame loads the input file and prepares the output directory
func initializeGame(opts options, out io.Writer) (*game, error) {
	world, err := parser.LoadFile(opts.inputFile)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(opts.config.OutputDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "[initializeGame] failed to create output dir: %+v", opts.config.OutputDir)
	}

	g := &game{
		config: opts.config,
		world:  world,
		snapshot: model.SnapshotRenderer{
			Live: opts.config.LiveMarker[0],
			Dead: opts.config.DeadMarker[0],
		},
		renderer: &model.TerminalRenderer{Out: out},
		stats:    utils.NewStats(world.Population()),
	}
	if opts.config.Verify {
		g.verifier = model.NewVerifier(world)
	}
	g.history.Record(model.HashOf(world))

	return g, nil
}

// snapshotName returns the output file for a generation
func (g *game) snapshotName(generation int) string {
	name := g.config.InitialFile
	if generation > 0 {
		name = fmt.Sprintf(g.config.GenerationFile, generation)
	}
	return filepath.Join(g.config.OutputDir, name)
}

// writeGeneration writes the current generation to its snapshot file
func (g *game) writeGeneration() error {
	return g.snapshot.WriteFile(g.snapshotName(g.world.Generation()), g.world)
}

// step advances the world and checks it against the reference when verifying
func (g *game) step() error {
	g.world.Advance()
	if g.verifier == nil {
		return nil
	}
	return g.verifier.Check(g.world)
}

// updateGameState records stats and history, reporting whether the pattern repeats
func (g *game) updateGameState(frameDuration time.Duration) bool {
	births, deaths := g.world.Changes()
	g.stats.Update(g.world.Generation(), g.world.Population(), births, deaths, frameDuration)

	hash := model.HashOf(g.world)
	isStagnant := g.history.IsStagnant(hash)
	g.history.Record(hash)
	return isStagnant
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, opts options, g *game) {
	fmt.Fprintf(out, "Input: %s | Generations: %d | Verify: %v\n",
		opts.inputFile, opts.config.Generations, opts.config.Verify)
	fmt.Fprintf(out, "Grid: %dx%d | Initial living cells: %d\n",
		g.world.GetWidth(), g.world.GetHeight(), g.world.Population())
	fmt.Fprintln(out)
}

// displayGameStatus shows the current game status
func displayGameStatus(out io.Writer, g *game, isStagnant bool) {
	var (
		living  = g.world.Population()
		density float64
		status  = "Active"
	)
	if area := g.world.GetWidth() * g.world.GetHeight(); area > 0 {
		density = float64(living) / float64(area) * 100
	}
	if isStagnant {
		status = "Stagnant"
	}
	if living == 0 {
		status = "Extinct"
	}

	births, deaths := g.world.Changes()
	fmt.Fprintf(out, "Gen: %d | Living: %d | Density: %.1f%% | Births: %d | Deaths: %d | Status: %s\n",
		g.world.Generation(), living, density, births, deaths, status)
}

// displayFinalStats prints a summary of the run
func displayFinalStats(out io.Writer, g *game) {
	fmt.Fprintf(out, "Final stats: %d generations in %.3f seconds | Performance: %.1f gen/sec\n",
		g.stats.TotalGenerations, g.stats.Runtime().Seconds(), g.stats.GenerationsPerSecond)
	fmt.Fprintf(out, "Peak population: %d | Avg Pop: %.1f | Births: %d | Deaths: %d\n",
		g.stats.PeakPopulation, g.stats.AveragePopulation, g.stats.Births, g.stats.Deaths)
}

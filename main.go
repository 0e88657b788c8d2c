package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-world/utils"
)

const defaultConfigFile = "config.json"

// ErrUsage is returned for bad command line arguments
var ErrUsage = errors.New("usage: gol-world [-config file] [-out dir] [-verify] [-display] [-stop-on-stagnation] <input-file> [generations]")

// options are the resolved command line settings
type options struct {
	inputFile string
	config    utils.Config
}

// parseArgs resolves flags, the config file and positional arguments.
// Flags override values from the config file.
func parseArgs(args []string) (options, error) {
	var (
		fs               = flag.NewFlagSet("gol-world", flag.ContinueOnError)
		configFile       = fs.String("config", defaultConfigFile, "JSON configuration file")
		outputDir        = fs.String("out", "", "directory for snapshot files")
		verify           = fs.Bool("verify", false, "check every generation against a dense reference grid")
		display          = fs.Bool("display", false, "draw every generation in the terminal")
		stopOnStagnation = fs.Bool("stop-on-stagnation", false, "stop once the pattern repeats")
	)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return options{}, errors.Wrapf(ErrUsage, "[parseArgs] %v", err)
	}

	config, err := utils.LoadConfig(*configFile)
	if err != nil {
		// a missing default config file falls back to defaults
		if !(*configFile == defaultConfigFile && os.IsNotExist(errors.Cause(err))) {
			return options{}, err
		}
		config = utils.DefaultConfig()
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			config.OutputDir = *outputDir
		case "verify":
			config.Verify = *verify
		case "display":
			config.Display = *display
		case "stop-on-stagnation":
			config.StopOnStagnation = *stopOnStagnation
		}
	})

	switch fs.NArg() {
	case 2:
		generations, err := strconv.ParseUint(fs.Arg(1), 10, 31)
		if err != nil {
			return options{}, errors.Wrapf(ErrUsage, "[parseArgs] invalid generation count: %q", fs.Arg(1))
		}
		config.Generations = int(generations)
	case 1:
	default:
		return options{}, errors.Wrapf(ErrUsage, "[parseArgs] expected 1 or 2 arguments, got %d", fs.NArg())
	}

	return options{inputFile: fs.Arg(0), config: config}, nil
}

// run executes one simulation, stopping early when stop fires
func run(args []string, out io.Writer, stop <-chan os.Signal) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	game, err := initializeGame(opts, out)
	if err != nil {
		return err
	}
	displayGameInfo(out, opts, game)

	if err = game.writeGeneration(); err != nil {
		return err
	}

	lastFrameTime := time.Now()
	for game.world.Generation() < opts.config.Generations {
		select {
		case <-stop:
			fmt.Fprintln(out, "\n🛑 Shutting down gracefully...")
			displayFinalStats(out, game)
			return nil
		default:
			// Continue with game loop
		}

		frameStart := time.Now()
		if err = game.step(); err != nil {
			return err
		}
		if err = game.writeGeneration(); err != nil {
			return err
		}

		isStagnant := game.updateGameState(time.Since(lastFrameTime))
		lastFrameTime = frameStart

		if opts.config.Display {
			game.renderer.Clear()
			game.renderer.Display(game.world)
		}
		displayGameStatus(out, game, isStagnant)

		if isStagnant && opts.config.StopOnStagnation {
			fmt.Fprintf(out, "\n🏁 Pattern repeats, stopping at generation %d\n", game.world.Generation())
			break
		}

		if opts.config.Display {
			time.Sleep(opts.config.FrameRate)
		}
	}

	displayFinalStats(out, game)
	return nil
}

func main() {
	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := run(os.Args[1:], os.Stdout, sigChan); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

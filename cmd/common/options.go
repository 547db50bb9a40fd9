package common

import (
	"errors"
	"flag"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/superstep/framework"
	"github.com/ScottSallinen/superstep/graph"
	"github.com/ScottSallinen/superstep/utils"
)

var ErrNoGraph = errors.New("no graph file given")

type LaunchOptions struct {
	Graph         string            // Edge list file.
	Undirected    bool              // Mirror every edge while loading.
	ConfigFile    string            // Optional HCL run file; explicit flags win over it.
	OracleCompare bool              // Re-run with the synchronous discipline and compare values at the end.
	WriteValues   bool              // Write final node values to results/<graph>-values.txt.
	NoColour      bool              // Plain log output.
	Engine        framework.Options // Passed to the runner.
}

// Declare your own flags before you call this function.
func FlagsToOptions() LaunchOptions {
	lo, err := ParseOptions(flag.CommandLine, os.Args[1:])
	if err != nil {
		if errors.Is(err, ErrNoGraph) {
			flag.Usage()
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Bad options.")
	}
	return lo
}

// Parses args into fs. A run file given with -f fills in anything not set on the command line.
func ParseOptions(fs *flag.FlagSet, args []string) (LaunchOptions, error) {
	defaults := framework.DefaultOptions()

	graphPtr := fs.String("g", "", "Graph file (edge list: src dst [weight]).")
	undirectedPtr := fs.Bool("u", false, "Interpret the input graph as undirected (add transpose edges).")
	configPtr := fs.String("f", "", "HCL run file. Flags given explicitly override its values.")
	iterPtr := fs.Int("i", defaults.MaxIterations, "Maximum number of supersteps.")
	threadPtr := fs.Int("t", runtime.NumCPU(), "Worker count for batch execution.")
	batchPtr := fs.Int("b", defaults.MinBatchSize, "Minimum number of nodes per batch.")
	asyncPtr := fs.Bool("a", false, "Use the asynchronous discipline (messages may be seen within the same superstep).")
	dirPtr := fs.String("dir", "out", "Neighbour direction for sends: out, in or both.")
	defaultPtr := fs.Float64("dv", 0, "Initial value of every node.")
	oraclePtr := fs.Bool("o", false, "Compare to oracle results (computed via sync) upon finishing the algorithm.")
	propPtr := fs.Bool("p", false, "Save node values to disk at the end.")
	debugPtr := fs.Int("debug", 0, "Adds extra debug output. Level 0 for info, 1 for debug (per superstep), 2 for trace.")
	colourPtr := fs.Bool("nc", false, "Removes the colouring from the log output.")
	if err := fs.Parse(args); err != nil {
		return LaunchOptions{}, err
	}

	if *colourPtr {
		utils.SetLoggerConsole(true)
	}
	utils.SetLevel(*debugPtr)

	direction, ok := graph.ParseDirection(*dirPtr)
	if !ok {
		return LaunchOptions{}, &framework.ConfigurationError{Field: "dir", Reason: "unknown value " + *dirPtr}
	}
	discipline := framework.SYNC
	if *asyncPtr {
		discipline = framework.ASYNC
	}

	lo := LaunchOptions{
		Graph:         *graphPtr,
		Undirected:    *undirectedPtr,
		ConfigFile:    *configPtr,
		OracleCompare: *oraclePtr,
		WriteValues:   *propPtr,
		NoColour:      *colourPtr,
		Engine: framework.Options{
			MaxIterations: *iterPtr,
			Concurrency:   *threadPtr,
			MinBatchSize:  *batchPtr,
			Discipline:    discipline,
			Direction:     direction,
			DefaultValue:  *defaultPtr,
			DebugLevel:    *debugPtr,
		},
	}

	if lo.ConfigFile != "" {
		rf, err := LoadRunFile(lo.ConfigFile)
		if err != nil {
			return LaunchOptions{}, err
		}
		explicit := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		if err := rf.Apply(&lo, explicit); err != nil {
			return LaunchOptions{}, err
		}
		if !explicit["debug"] && rf.DebugLevel != nil {
			utils.SetLevel(lo.Engine.DebugLevel)
		}
	}

	if lo.Graph == "" {
		return lo, ErrNoGraph
	}
	if lo.Engine.Concurrency > runtime.NumCPU() {
		log.Warn().Msg("Thread count is greater than CPU count?")
	}
	return lo, nil
}

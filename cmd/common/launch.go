package common

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/superstep/enforce"
	"github.com/ScottSallinen/superstep/framework"
	"github.com/ScottSallinen/superstep/graph"
	"github.com/ScottSallinen/superstep/utils"
)

// "data/web-google.txt" -> "web-google".
func ExtractGraphName(graphFilename string) string {
	base := filepath.Base(graphFilename)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		return strings.TrimSuffix(base, ext)
	}
	return base
}

func LoadGraph(lo LaunchOptions) *graph.Graph {
	g, err := graph.LoadEdgeList(lo.Graph, lo.Undirected)
	enforce.ENFORCE(err)
	g.ComputeGraphStats()
	return g
}

// Loads the graph named in lo and runs alg over it.
func Launch(alg framework.Computation, lo LaunchOptions) (*graph.Graph, *framework.Result) {
	g := LoadGraph(lo)
	return g, Execute(g, alg, lo)
}

// Runs alg until it converges, hits the iteration limit, or the process is interrupted.
func Execute(g *graph.Graph, alg framework.Computation, lo LaunchOptions) *framework.Result {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := framework.Run(ctx, g, alg, lo.Engine)
	enforce.ENFORCE(err, "run failed")

	if lo.OracleCompare {
		_, _, _, err := CompareToOracle(ctx, g, alg, lo.Engine, res)
		enforce.ENFORCE(err, "oracle run failed")
	}
	if lo.WriteValues {
		WriteValues(g, res, "results/"+ExtractGraphName(lo.Graph)+"-values.txt")
	}
	return res
}

// Re-runs alg with the synchronous discipline and compares its values to res.
func CompareToOracle(ctx context.Context, g graph.View, alg framework.Computation, opts framework.Options, res *framework.Result) (avgL1Diff, medianL1Diff, largestL1Diff float64, err error) {
	log.Info().Msg("----INLINE----")
	oracleOpts := opts
	oracleOpts.Discipline = framework.SYNC
	oracleOpts.DebugLevel = 0
	oracle, err := framework.Run(ctx, g, alg, oracleOpts)
	if err != nil {
		return 0, 0, 0, err
	}
	avgL1Diff, medianL1Diff, largestL1Diff = utils.ResultCompare(res.Values.ToSlice(), oracle.Values.ToSlice())
	log.Info().Msg("Oracle supersteps: " + utils.V(oracle.Supersteps) + " status: " + oracle.Status.String())
	log.Info().Msg("AvgL1Diff " + utils.F("%.3e", avgL1Diff) + " MedianL1Diff " + utils.F("%.3e", medianL1Diff) + " LargestL1Diff " + utils.F("%.3e", largestL1Diff))
	log.Info().Msg("----END_INLINE----")
	return avgL1Diff, medianL1Diff, largestL1Diff, nil
}

// One "rawId value" line per node.
func WriteValues(g *graph.Graph, res *framework.Result, filename string) {
	enforce.ENFORCE(os.MkdirAll(filepath.Dir(filename), 0o755))
	f, err := os.Create(filename)
	enforce.ENFORCE(err)
	defer f.Close()

	buf := make([]byte, 0, 64)
	res.Values.ForEach(func(node uint64, value float64) {
		buf = strconv.AppendUint(buf[:0], g.RawId(node), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, value, 'g', -1, 64)
		buf = append(buf, '\n')
		_, err := f.Write(buf)
		enforce.ENFORCE(err)
	})
	log.Info().Msg("Wrote " + filename)
}

package common

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScottSallinen/superstep/framework"
	"github.com/ScottSallinen/superstep/graph"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func parse(t *testing.T, args ...string) (LaunchOptions, error) {
	t.Helper()
	return ParseOptions(flag.NewFlagSet("test", flag.ContinueOnError), args)
}

const runFile = `
graph      = "ring.txt"
undirected = true
debug      = 0

engine {
  max_iterations = 42
  concurrency    = num_cpu
  min_batch_size = 8
  discipline     = "async"
  direction      = "both"
  default_value  = 1.5
}
`

func TestFlagsOnly(t *testing.T) {
	lo, err := parse(t, "-g", "x.txt", "-i", "7", "-t", "2", "-b", "3", "-a", "-dir", "in", "-dv", "-1", "-o")
	require.NoError(t, err)
	assert.Equal(t, "x.txt", lo.Graph)
	assert.True(t, lo.OracleCompare)
	assert.Equal(t, framework.Options{
		MaxIterations: 7,
		Concurrency:   2,
		MinBatchSize:  3,
		Discipline:    framework.ASYNC,
		Direction:     graph.IN,
		DefaultValue:  -1,
	}, lo.Engine)
}

func TestDefaults(t *testing.T) {
	lo, err := parse(t, "-g", "x.txt")
	require.NoError(t, err)
	want := framework.DefaultOptions()
	want.Concurrency = runtime.NumCPU()
	assert.Equal(t, want, lo.Engine)
	assert.False(t, lo.Undirected)
}

func TestRunFile(t *testing.T) {
	path := writeFile(t, "run.hcl", runFile)
	lo, err := parse(t, "-f", path)
	require.NoError(t, err)

	assert.Equal(t, "ring.txt", lo.Graph)
	assert.True(t, lo.Undirected)
	assert.Equal(t, 42, lo.Engine.MaxIterations)
	assert.Equal(t, runtime.NumCPU(), lo.Engine.Concurrency)
	assert.Equal(t, 8, lo.Engine.MinBatchSize)
	assert.Equal(t, framework.ASYNC, lo.Engine.Discipline)
	assert.Equal(t, graph.BOTH, lo.Engine.Direction)
	assert.Equal(t, 1.5, lo.Engine.DefaultValue)
}

func TestFlagsOverrideRunFile(t *testing.T) {
	path := writeFile(t, "run.hcl", runFile)
	lo, err := parse(t, "-f", path, "-i", "3", "-g", "other.txt", "-dir", "out")
	require.NoError(t, err)

	assert.Equal(t, "other.txt", lo.Graph)
	assert.Equal(t, 3, lo.Engine.MaxIterations)
	assert.Equal(t, graph.OUT, lo.Engine.Direction)
	assert.Equal(t, 8, lo.Engine.MinBatchSize, "not given on the command line")
}

func TestRunFileWithoutEngineBlock(t *testing.T) {
	path := writeFile(t, "run.hcl", `graph = "g.txt"`)
	lo, err := parse(t, "-f", path, "-i", "9")
	require.NoError(t, err)
	assert.Equal(t, "g.txt", lo.Graph)
	assert.Equal(t, 9, lo.Engine.MaxIterations)
}

func TestRunFileErrors(t *testing.T) {
	cases := map[string]string{
		"syntax":         "graph = \n",
		"unknown attr":   "colour = 3\n",
		"bad discipline": "engine {\n  discipline = \"sometimes\"\n}\n",
		"bad direction":  "engine {\n  direction = \"up\"\n}\n",
		"wrong type":     "engine {\n  max_iterations = \"many\"\n}\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "run.hcl", content)
			_, err := parse(t, "-g", "x.txt", "-f", path)
			assert.Error(t, err)
		})
	}
	_, err := parse(t, "-g", "x.txt", "-f", filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}

func TestNoGraph(t *testing.T) {
	_, err := parse(t, "-i", "3")
	assert.ErrorIs(t, err, ErrNoGraph)

	_, err = parse(t, "-g", "x.txt", "-dir", "sideways")
	assert.ErrorIs(t, err, framework.ErrConfiguration)
}

func TestExtractGraphName(t *testing.T) {
	assert.Equal(t, "web-google", ExtractGraphName("data/web-google.txt"))
	assert.Equal(t, "graph", ExtractGraphName("graph"))
	assert.Equal(t, "a.b", ExtractGraphName("/x/a.b.el"))
}

func TestLaunchAndOracle(t *testing.T) {
	path := writeFile(t, "ring.txt", "0 1\n1 2\n2 3\n3 0\n")
	lo, err := parse(t, "-g", path, "-u", "-t", "2", "-b", "1", "-a")
	require.NoError(t, err)

	minLabel := framework.ComputeFunc(func(nc *framework.NodeContext, node uint64, messages []float64) error {
		v := nc.Value()
		if nc.IsInitialSuperstep() {
			v = float64(node)
		}
		for _, m := range messages {
			v = min(v, m)
		}
		if nc.IsInitialSuperstep() || v < nc.Value() {
			nc.SetValue(v)
			nc.SendToNeighbors(v)
		}
		nc.VoteToHalt()
		return nil
	})
	g, res := Launch(minLabel, lo)
	require.True(t, res.Converged())
	assert.Equal(t, []float64{0, 0, 0, 0}, res.Values.ToSlice())

	avg, median, largest, err := CompareToOracle(context.Background(), g, minLabel, lo.Engine, res)
	require.NoError(t, err)
	assert.Zero(t, avg)
	assert.Zero(t, median)
	assert.Zero(t, largest)

	out := filepath.Join(t.TempDir(), "out", "values.txt")
	WriteValues(g, res, out)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "0 0\n1 0\n2 0\n3 0\n", string(data))
}

package common

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog/log"
	"github.com/zclconf/go-cty/cty"

	"github.com/ScottSallinen/superstep/framework"
	"github.com/ScottSallinen/superstep/graph"
)

// A run file, e.g.
//
//	graph      = "data/ring.txt"
//	undirected = true
//	engine {
//	  max_iterations = 50
//	  concurrency    = num_cpu
//	  discipline     = "async"
//	}
//
// Unset attributes leave the command line defaults alone.
type RunFile struct {
	Graph         *string      `hcl:"graph,optional"`
	Undirected    *bool        `hcl:"undirected,optional"`
	OracleCompare *bool        `hcl:"oracle_compare,optional"`
	WriteValues   *bool        `hcl:"write_values,optional"`
	DebugLevel    *int         `hcl:"debug,optional"`
	Engine        *EngineBlock `hcl:"engine,block"`
}

type EngineBlock struct {
	MaxIterations *int     `hcl:"max_iterations,optional"`
	Concurrency   *int     `hcl:"concurrency,optional"`
	MinBatchSize  *int     `hcl:"min_batch_size,optional"`
	Discipline    *string  `hcl:"discipline,optional"`
	Direction     *string  `hcl:"direction,optional"`
	DefaultValue  *float64 `hcl:"default_value,optional"`
}

// Variables usable inside run files.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"num_cpu": cty.NumberIntVal(int64(runtime.NumCPU())),
		},
	}
}

func LoadRunFile(path string) (*RunFile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse run file %s: %s", path, diags.Error())
	}

	var rf RunFile
	diags = gohcl.DecodeBody(file.Body, evalContext(), &rf)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode run file %s: %s", path, diags.Error())
	}
	log.Debug().Msg("Decoded run file " + path)
	return &rf, nil
}

// Copies every attribute present in the file into lo, except those named in skip
// (flag names given explicitly on the command line).
func (rf *RunFile) Apply(lo *LaunchOptions, skip map[string]bool) error {
	set := func(flagName string) bool { return !skip[flagName] }

	if rf.Graph != nil && set("g") {
		lo.Graph = *rf.Graph
	}
	if rf.Undirected != nil && set("u") {
		lo.Undirected = *rf.Undirected
	}
	if rf.OracleCompare != nil && set("o") {
		lo.OracleCompare = *rf.OracleCompare
	}
	if rf.WriteValues != nil && set("p") {
		lo.WriteValues = *rf.WriteValues
	}
	if rf.DebugLevel != nil && set("debug") {
		lo.Engine.DebugLevel = *rf.DebugLevel
	}
	e := rf.Engine
	if e == nil {
		return nil
	}
	if e.MaxIterations != nil && set("i") {
		lo.Engine.MaxIterations = *e.MaxIterations
	}
	if e.Concurrency != nil && set("t") {
		lo.Engine.Concurrency = *e.Concurrency
	}
	if e.MinBatchSize != nil && set("b") {
		lo.Engine.MinBatchSize = *e.MinBatchSize
	}
	if e.DefaultValue != nil && set("dv") {
		lo.Engine.DefaultValue = *e.DefaultValue
	}
	if e.Discipline != nil && set("a") {
		d, ok := framework.ParseDiscipline(*e.Discipline)
		if !ok {
			return &framework.ConfigurationError{Field: "discipline", Reason: "unknown value " + *e.Discipline}
		}
		lo.Engine.Discipline = d
	}
	if e.Direction != nil && set("dir") {
		d, ok := graph.ParseDirection(*e.Direction)
		if !ok {
			return &framework.ConfigurationError{Field: "direction", Reason: "unknown value " + *e.Direction}
		}
		lo.Engine.Direction = d
	}
	return nil
}

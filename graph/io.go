package graph

import (
	"errors"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/superstep/utils"
)

const MAX_ELEMS_PER_LINE = 3

var ErrMalformedLine = errors.New("malformed edge list line")

// Loads a text edge list: "src dst [weight]" per line. Lines starting with '#' are comments,
// a line with a single id declares a (possibly isolated) node.
func LoadEdgeList(path string, undirected bool) (*Graph, error) {
	file, err := utils.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	g, err := ReadEdgeList(file, undirected)
	if err != nil {
		return nil, errors.Join(errors.New("loading "+path), err)
	}
	log.Info().Msg("Loaded " + path + " vertices: " + utils.V(g.NodeCount()) + " edges: " + utils.V(g.EdgeCount()))
	return g, nil
}

func ReadEdgeList(r io.Reader, undirected bool) (*Graph, error) {
	b := NewBuilder()
	scanner := utils.FastFileLines{Buf: make([]byte, 64*1024)}
	fields := make([]string, MAX_ELEMS_PER_LINE)
	lineNum := 0

	for line := scanner.Scan(r); line != nil; line = scanner.Scan(r) {
		lineNum++
		if len(line) > 0 && line[0] == '#' {
			continue
		}
		n := utils.FastFields(fields, line)
		if n == 0 {
			continue
		}
		src, err := utils.ToUint64(fields[0])
		if err != nil {
			return nil, lineError(lineNum, err)
		}
		if n == 1 {
			b.AddNode(src)
			continue
		}
		dst, err := utils.ToUint64(fields[1])
		if err != nil {
			return nil, lineError(lineNum, err)
		}
		if n == 3 {
			w, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, lineError(lineNum, err)
			}
			b.AddWeightedEdge(src, dst, w)
		} else {
			b.AddEdge(src, dst)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return b.Build(undirected), nil
}

func lineError(lineNum int, err error) error {
	return errors.Join(ErrMalformedLine, errors.New("line "+strconv.Itoa(lineNum)), err)
}

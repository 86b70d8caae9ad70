package graph

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"
	. "github.com/ttpr0/isomap/util"
)

var graph_file_magic = [4]byte{'I', 'S', 'O', 'G'}

const graph_file_version int32 = 1

//*******************************************
// load and store graph
//*******************************************

// Writes nodes and edges of the graph to a binary file.
func StoreGraphBase(base *GraphBase, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create graph file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := WriteGraphBase(base, writer); err != nil {
		return err
	}
	return writer.Flush()
}

func WriteGraphBase(base *GraphBase, w io.Writer) error {
	header := []any{graph_file_magic, graph_file_version, int32(base.NodeCount()), int32(base.EdgeCount())}
	for _, value := range header {
		if err := binary.Write(w, binary.LittleEndian, value); err != nil {
			return err
		}
	}
	for _, node := range base.nodes {
		if err := binary.Write(w, binary.LittleEndian, [2]float64(node.Loc)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, node.OSMID); err != nil {
			return err
		}
	}
	for _, edge := range base.edges {
		if err := binary.Write(w, binary.LittleEndian, edge); err != nil {
			return err
		}
	}
	return nil
}

func LoadGraphBase(filename string) (*GraphBase, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadGraphBase(bufio.NewReader(file))
}

func ReadGraphBase(r io.Reader) (*GraphBase, error) {
	var magic [4]byte
	var version, nodecount, edgecount int32
	for _, value := range []any{&magic, &version, &nodecount, &edgecount} {
		if err := binary.Read(r, binary.LittleEndian, value); err != nil {
			return nil, fmt.Errorf("failed to read graph header: %w", err)
		}
	}
	if magic != graph_file_magic || version != graph_file_version {
		return nil, errors.New("not a graph file or unsupported version")
	}
	if nodecount < 0 || edgecount < 0 {
		return nil, errors.New("corrupt graph header")
	}

	nodes := NewList[Node](int(nodecount))
	for i := 0; i < int(nodecount); i++ {
		var loc [2]float64
		var osm_id int64
		if err := binary.Read(r, binary.LittleEndian, &loc); err != nil {
			return nil, fmt.Errorf("failed to read node %v: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &osm_id); err != nil {
			return nil, fmt.Errorf("failed to read node %v: %w", i, err)
		}
		nodes.Add(Node{Loc: orb.Point(loc), OSMID: osm_id})
	}
	edges := NewList[Edge](int(edgecount))
	for i := 0; i < int(edgecount); i++ {
		var edge Edge
		if err := binary.Read(r, binary.LittleEndian, &edge); err != nil {
			return nil, fmt.Errorf("failed to read edge %v: %w", i, err)
		}
		if edge.NodeA < 0 || edge.NodeA >= nodecount || edge.NodeB < 0 || edge.NodeB >= nodecount {
			return nil, fmt.Errorf("edge %v references unknown node", i)
		}
		edges.Add(edge)
	}
	return BuildGraphBase(nodes, edges), nil
}

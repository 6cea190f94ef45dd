// Package transport streams simulation frames to viewer processes over a
// local publish/subscribe channel: topic-prefixed JSON lines on TCP.
//
// Two message shapes flow over the channel: an init message describing the
// systems being simulated (graph layout, plot identifiers, display hints)
// and periodic data messages carrying the current time and per-plot value
// vectors. The wire format is declarative data only - scenario names and
// vectors, never executable configuration.
package transport

import (
	"encoding/json"
	"fmt"

	"github.com/ooblahman/graph-turbulence/internal/field"
	"github.com/ooblahman/graph-turbulence/internal/graph"
)

// Message tags.
const (
	TagInit = "init"
	TagData = "data"
)

// InitMessage announces the systems a publisher will stream.
type InitMessage struct {
	Tag     string       `json:"tag"`
	Systems []SystemInit `json:"systems"`
}

// SystemInit describes one system: its graph and its plots.
type SystemInit struct {
	Desc  string     `json:"desc"`
	Graph GraphData  `json:"graph"`
	Plots []PlotInit `json:"plots"`
}

// PlotInit identifies one observable's plot and its display hints.
type PlotInit struct {
	ID      string  `json:"id"`
	Desc    string  `json:"desc"`
	Kind    string  `json:"kind"`
	Palette string  `json:"palette"`
	Lo      float64 `json:"lo"`
	Hi      float64 `json:"hi"`
	ShowBar bool    `json:"show_bar"`
}

// GraphData is a node-link rendition of a graph.
type GraphData struct {
	Nodes []NodeData `json:"nodes"`
	Links []LinkData `json:"links"`
}

// NodeData carries one vertex and its optional layout position.
type NodeData struct {
	ID  string      `json:"id"`
	Pos *[2]float64 `json:"pos,omitempty"`
}

// LinkData carries one edge in its stored orientation.
type LinkData struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// DataMessage carries one frame: the simulation time and each plot's value
// vector, keyed by plot ID.
type DataMessage struct {
	Tag   string               `json:"tag"`
	T     float64              `json:"t"`
	Plots map[string][]float64 `json:"plots"`
}

// DescribeGraph converts a graph to node-link form.
func DescribeGraph(g *graph.Graph) GraphData {
	gd := GraphData{
		Nodes: make([]NodeData, 0, g.VertexCount()),
		Links: make([]LinkData, 0, g.EdgeCount()),
	}
	for _, v := range g.Vertices() {
		nd := NodeData{ID: v}
		if p, ok := g.Pos(v); ok {
			pos := p
			nd.Pos = &pos
		}
		gd.Nodes = append(gd.Nodes, nd)
	}
	for _, e := range g.Edges() {
		w, _ := g.Weight(e.U, e.V)
		gd.Links = append(gd.Links, LinkData{Source: e.U, Target: e.V, Weight: w})
	}
	return gd
}

// DescribeSystem builds the init record for one simulation.
func DescribeSystem(sys field.Simulation) SystemInit {
	obs := sys.Observables()
	si := SystemInit{
		Desc:  sys.Desc(),
		Plots: make([]PlotInit, 0, len(obs)),
	}
	if len(obs) > 0 {
		si.Graph = DescribeGraph(obs[0].Graph())
	}
	for _, o := range obs {
		r := o.Render()
		si.Plots = append(si.Plots, PlotInit{
			ID:      o.ID(),
			Desc:    o.Desc(),
			Kind:    o.Kind().String(),
			Palette: r.Palette,
			Lo:      r.Lo,
			Hi:      r.Hi,
			ShowBar: r.ShowBar,
		})
	}
	return si
}

// Frame builds the data record for one simulation tick from the vectors
// Measure returned.
func Frame(sys field.Simulation, vecs []field.Vector) DataMessage {
	msg := DataMessage{
		Tag:   TagData,
		T:     sys.T(),
		Plots: make(map[string][]float64, len(vecs)),
	}
	for i, o := range sys.Observables() {
		if i < len(vecs) {
			msg.Plots[o.ID()] = vecs[i]
		}
	}
	return msg
}

// Decode parses one wire payload into *InitMessage or *DataMessage.
func Decode(payload []byte) (any, error) {
	var env struct {
		Tag string `json:"tag"`
	}
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("transport: bad payload: %w", err)
	}
	switch env.Tag {
	case TagInit:
		var msg InitMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return nil, fmt.Errorf("transport: bad init message: %w", err)
		}
		return &msg, nil
	case TagData:
		var msg DataMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return nil, fmt.Errorf("transport: bad data message: %w", err)
		}
		return &msg, nil
	default:
		return nil, fmt.Errorf("transport: unknown message tag %q", env.Tag)
	}
}

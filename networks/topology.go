// Copyright 2024 The powsim Authors
// This file is part of the powsim library.
//
// The powsim library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The powsim library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the powsim library. If not, see <http://www.gnu.org/licenses/>.

package networks

import (
	"github.com/pkg/errors"

	"github.com/powsim/powsim/log"
	"github.com/powsim/powsim/params"
)

var logger = log.NewModuleLogger(log.Networks)

// ErrTopologyFailure: no connected graph under the degree constraints
// was found within the attempt budget.
var ErrTopologyFailure = errors.New("topology: connectivity not achievable")

const maxTopologyAttempts = 1000

// Graph is the undirected peer connection graph. Neighbor lists keep
// insertion order, which is deterministic under the seed.
type Graph struct {
	n   int
	adj [][]int
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return g.n }

// Neighbors returns node i's neighbor list.
func (g *Graph) Neighbors(i int) []int { return g.adj[i] }

// Degree returns node i's degree.
func (g *Graph) Degree(i int) int { return len(g.adj[i]) }

// Edges lists each undirected edge once, smaller endpoint first.
func (g *Graph) Edges() [][2]int {
	var edges [][2]int
	for x := 0; x < g.n; x++ {
		for _, y := range g.adj[x] {
			if x < y {
				edges = append(edges, [2]int{x, y})
			}
		}
	}
	return edges
}

func (g *Graph) hasEdge(x, y int) bool {
	for _, v := range g.adj[x] {
		if v == y {
			return true
		}
	}
	return false
}

func (g *Graph) connect(x, y int) {
	g.adj[x] = append(g.adj[x], y)
	g.adj[y] = append(g.adj[y], x)
}

func (g *Graph) connected() bool {
	seen := make([]bool, g.n)
	queue := []int{0}
	seen[0] = true
	count := 1
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		for _, y := range g.adj[x] {
			if !seen[y] {
				seen[y] = true
				count++
				queue = append(queue, y)
			}
		}
	}
	return count == g.n
}

// GenerateTopology builds a connected graph over n peers with every
// degree in [MinPeerDegree, MaxPeerDegree]: each node picks a target
// degree and links to random non-neighbors with spare degree; the whole
// graph is rebuilt from scratch whenever a node gets stuck or the result
// is disconnected. For tiny networks the degree bounds clamp to n-1.
func GenerateTopology(rnd *RandomSource, n int) (*Graph, error) {
	minDeg := params.MinPeerDegree
	maxDeg := params.MaxPeerDegree
	if n-1 < minDeg {
		minDeg = n - 1
	}
	if n-1 < maxDeg {
		maxDeg = n - 1
	}

	for attempt := 0; attempt < maxTopologyAttempts; attempt++ {
		g := &Graph{n: n, adj: make([][]int, n)}
		if g.fill(rnd, minDeg, maxDeg) && g.connected() {
			logger.Debug("topology generated", "nodes", n, "attempts", attempt+1)
			return g, nil
		}
	}
	return nil, errors.Wrapf(ErrTopologyFailure, "n=%d after %d attempts", n, maxTopologyAttempts)
}

// fill wires every node up to a random target degree. Returns false when
// a node runs out of candidates, asking for a restart.
func (g *Graph) fill(rnd *RandomSource, minDeg, maxDeg int) bool {
	for x := 0; x < g.n; x++ {
		target := int(rnd.IntRange(int64(minDeg), int64(maxDeg)+1))
		for g.Degree(x) < target {
			var candidates []int
			for y := 0; y < g.n; y++ {
				if y == x || g.hasEdge(x, y) || g.Degree(y) >= maxDeg {
					continue
				}
				candidates = append(candidates, y)
			}
			if len(candidates) == 0 {
				return false
			}
			g.connect(x, candidates[rnd.Intn(len(candidates))])
		}
	}
	return true
}

// AssignLinkSpeeds flags percentSlow percent of the n peers as slow,
// shuffled under the run's seed.
func AssignLinkSpeeds(rnd *RandomSource, n int, percentSlow float64) []bool {
	slow := make([]bool, n)
	count := int(percentSlow * float64(n) / 100)
	for i := 0; i < count && i < n; i++ {
		slow[i] = true
	}
	rnd.Shuffle(n, func(i, j int) { slow[i], slow[j] = slow[j], slow[i] })
	return slow
}

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

package report

import (
	"fmt"
	"io/ioutil"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/powsim/powsim/blockchain"
	"github.com/powsim/powsim/simulation"
)

// WriteBlockTrees dumps every peer's block-tree as DOT and, when the
// graphviz dot binary is on the path, renders a PNG next to it.
func WriteBlockTrees(sim *simulation.Simulation, dir string) error {
	for _, p := range sim.Peers() {
		name := filepath.Join(dir, "BlockChains", fmt.Sprintf("bc_%d.dot", p.ID()))
		if err := ioutil.WriteFile(name, []byte(blockTreeDot(p)), 0644); err != nil {
			return errors.Wrap(err, "writing block tree dot")
		}
		renderPNG(name)
	}
	return nil
}

// blockTreeDot walks the accepted tree from genesis in acceptance order.
// Blocks mined by the selfish peers are colored as in the reference
// plots: peer 0 blue, peer 1 red.
func blockTreeDot(p *simulation.Peer) string {
	l := p.Ledger()
	var b strings.Builder
	fmt.Fprintf(&b, "digraph bc_%d {\n", p.ID())

	var colored, edges []string
	queue := []blockchain.BlockID{blockchain.GenesisBlockID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range l.Children(id) {
			cb, ok := l.Get(child)
			if !ok {
				continue
			}
			if color := creatorColor(cb.Creator); color != "" {
				colored = append(colored, fmt.Sprintf("\t%q [color=%s];", blockLabel(l, child), color))
			}
			edges = append(edges, fmt.Sprintf("\t%q -> %q;", blockLabel(l, id), blockLabel(l, child)))
			queue = append(queue, child)
		}
	}
	for _, line := range colored {
		b.WriteString(line + "\n")
	}
	for _, line := range edges {
		b.WriteString(line + "\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func blockLabel(l *blockchain.Ledger, id blockchain.BlockID) string {
	if id == blockchain.GenesisBlockID {
		return "Genesis"
	}
	b, ok := l.Get(id)
	if !ok {
		return fmt.Sprintf("Block_%d", id)
	}
	return fmt.Sprintf("Peer_%d, %d", b.Creator, id)
}

func creatorColor(creator blockchain.PeerID) string {
	switch creator {
	case 0:
		return "blue"
	case 1:
		return "red"
	}
	return ""
}

// WriteNetworkGraph dumps the peer connection graph as DOT.
func WriteNetworkGraph(sim *simulation.Simulation, dir string) error {
	var b strings.Builder
	b.WriteString("graph network {\n")
	for _, e := range sim.Graph().Edges() {
		fmt.Fprintf(&b, "\t%d -- %d;\n", e[0], e[1])
	}
	b.WriteString("}\n")
	name := filepath.Join(dir, "BlockChain_Network_Connections.dot")
	if err := ioutil.WriteFile(name, []byte(b.String()), 0644); err != nil {
		return errors.Wrap(err, "writing network dot")
	}
	renderPNG(name)
	return nil
}

// renderPNG is best-effort: missing graphviz just leaves the .dot files.
func renderPNG(dotPath string) {
	dot, err := exec.LookPath("dot")
	if err != nil {
		return
	}
	png := strings.TrimSuffix(dotPath, ".dot") + ".png"
	if out, err := exec.Command(dot, "-Tpng", dotPath, "-o", png).CombinedOutput(); err != nil {
		logger.Debug("png render failed", "file", dotPath, "err", err, "output", string(out))
	}
}

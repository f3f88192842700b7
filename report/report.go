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
	"io"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/powsim/powsim/blockchain"
	"github.com/powsim/powsim/simulation"
)

var subdirs = []string{"Results", "BlockChains", "Events", "Transactions"}

// PrepareDirs creates the output tree and clears stale files from a
// previous run.
func PrepareDirs(dir string) error {
	for _, sub := range subdirs {
		path := filepath.Join(dir, sub)
		if err := os.MkdirAll(path, 0755); err != nil {
			return errors.Wrap(err, "creating output dirs")
		}
		entries, err := ioutil.ReadDir(path)
		if err != nil {
			return errors.Wrap(err, "reading output dir")
		}
		for _, e := range entries {
			if err := os.Remove(filepath.Join(path, e.Name())); err != nil {
				return errors.Wrap(err, "clearing output dir")
			}
		}
	}
	return nil
}

// WriteResults dumps every peer's summary file and arrival-time CSV.
func WriteResults(sim *simulation.Simulation, dir string) error {
	total := sim.Arena().TotalBlocks()
	for _, p := range sim.Peers() {
		if err := writePeerResult(p, total, dir); err != nil {
			return err
		}
		if err := writeArrivalCSV(p, dir); err != nil {
			return err
		}
	}
	return nil
}

func writePeerResult(p *simulation.Peer, totalBlocks uint64, dir string) error {
	l := p.Ledger()
	ordering := l.LongestChain()

	created := p.CreatedBlocks()
	onChain := 0
	for _, id := range ordering {
		if p.CreatedBlock(id) {
			onChain++
		}
	}
	ratio := "None"
	if len(created) > 0 {
		r := math.Round(float64(onChain)/float64(len(created))*1000) / 1000
		ratio = fmt.Sprintf("%v", r)
	}

	accepted := l.AcceptedIDs()
	sort.Slice(accepted, func(i, j int) bool { return accepted[i] < accepted[j] })

	var b strings.Builder
	fmt.Fprintf(&b, "Peer_%d is of type %s \n", p.ID(), peerTypeLabel(p))
	fmt.Fprintf(&b, "Peer Block Details:%v %v %v %v\n",
		created, accepted, l.OrphanIDs(), l.ArrivalOrder())
	fmt.Fprintf(&b, "Length of longest chain (including genesis block):%d\n", l.Head().Length)
	fmt.Fprintf(&b, "Longest chain:%v\n", ordering)
	fmt.Fprintf(&b, "Total number of blocks at Peer_%d : %d\n", p.ID(), totalBlocks-1)
	fmt.Fprintf(&b, "Fraction of longChain to Total Blocks %v\n",
		float64(len(ordering))/float64(totalBlocks))
	fmt.Fprintf(&b, "Ratio of blocks mined by Peer_%d that made it to the longest chain: %s\n", p.ID(), ratio)
	fmt.Fprintf(&b, "\n")

	name := filepath.Join(dir, "Results", fmt.Sprintf("peer_%d.txt", p.ID()))
	return errors.Wrap(ioutil.WriteFile(name, []byte(b.String()), 0644), "writing peer result")
}

func writeArrivalCSV(p *simulation.Peer, dir string) error {
	l := p.Ledger()
	var b strings.Builder
	b.WriteString("Block_id, Arrival_Time \n")
	for _, id := range l.ArrivalOrder() {
		t, _ := l.Arrival(id)
		fmt.Fprintf(&b, "%d, %v\n", id, t)
	}
	name := filepath.Join(dir, "Results", fmt.Sprintf("arrival_times_peer_%d.csv", p.ID()))
	return errors.Wrap(ioutil.WriteFile(name, []byte(b.String()), 0644), "writing arrival csv")
}

func peerTypeLabel(p *simulation.Peer) string {
	cpu := "honest"
	if p.Kind().IsSelfish() {
		cpu = "selfish"
	}
	speed := "fast"
	if p.Slow() {
		speed = "slow"
	}
	return cpu + "_" + speed
}

// Metrics summarizes a finished run, measured at the observer peer.
type Metrics struct {
	MPUSelfish0 float64
	MPUSelfish1 float64
	MPUOverall  float64

	Created0 int
	Created1 int
	InChain0 int
	InChain1 int

	LongestChainLength int
	TotalBlocks        uint64
}

// ComputeMetrics walks the observer peer's longest chain and counts the
// selfish miners' share of it.
func ComputeMetrics(sim *simulation.Simulation) Metrics {
	observer := sim.ObserverPeer()
	m := Metrics{
		LongestChainLength: observer.Ledger().Head().Length,
		TotalBlocks:        sim.Arena().TotalBlocks(),
	}
	for _, id := range observer.Ledger().LongestChain() {
		if id == blockchain.GenesisBlockID {
			continue
		}
		b, ok := observer.Ledger().Get(id)
		if !ok {
			continue
		}
		switch sim.Peer(b.Creator).Kind() {
		case simulation.Selfish1:
			m.InChain0++
		case simulation.Selfish2:
			m.InChain1++
		}
	}
	for _, p := range sim.Peers() {
		switch p.Kind() {
		case simulation.Selfish1:
			m.Created0 = len(p.CreatedBlocks())
		case simulation.Selfish2:
			m.Created1 = len(p.CreatedBlocks())
		}
	}
	if m.Created0 > 0 {
		m.MPUSelfish0 = float64(m.InChain0) / float64(m.Created0)
	}
	if m.Created1 > 0 {
		m.MPUSelfish1 = float64(m.InChain1) / float64(m.Created1)
	}
	m.MPUOverall = float64(m.LongestChainLength) / float64(m.TotalBlocks)
	return m
}

// PrintMetrics writes the end-of-run summary.
func PrintMetrics(w io.Writer, m Metrics) {
	if m.Created0 == 0 {
		fmt.Fprintln(w, "MPU of selfish miner 0: 0")
	} else {
		fmt.Fprintf(w, "MPU of selfish miner 0: %v\n", m.MPUSelfish0)
	}
	if m.Created1 == 0 {
		fmt.Fprintln(w, "MPU of selfish miner 1: 0")
	} else {
		fmt.Fprintf(w, "MPU of selfish miner 1: %v\n", m.MPUSelfish1)
	}
	fmt.Fprintf(w, "MPU overall: %v\n", m.MPUOverall)
	fmt.Fprintf(w, "Blocks created by selfish miner 0: %d Blocks in longest chain: %d\n", m.Created0, m.InChain0)
	fmt.Fprintf(w, "Blocks created by selfish miner 1: %d Blocks in longest chain: %d\n", m.Created1, m.InChain1)
	fmt.Fprintf(w, "Length of longest Chain : %d Total Blocks : %d\n", m.LongestChainLength, m.TotalBlocks)
}

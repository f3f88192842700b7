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
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powsim/powsim/blockchain"
	"github.com/powsim/powsim/params"
	"github.com/powsim/powsim/simulation"
)

// The end-to-end runs keep the transaction-to-block ratio of the default
// configuration but scale both intervals up, so that propagation delays
// (drawn in the 10-500 msec band) stay small against the mining
// interval and the qualitative chain-quality expectations hold.
const (
	e2eBlockTime  = 5000
	e2eTxInterval = 500
)

func e2eConfig(n int, h0, h1 float64, stop bool) *params.SimConfig {
	cfg := params.DefaultSimConfig()
	cfg.NumPeers = n
	cfg.HashSelfish0 = h0
	cfg.HashSelfish1 = h1
	cfg.MeanBlockTime = e2eBlockTime
	cfg.MeanTxInterval = e2eTxInterval
	cfg.StopCondition = stop
	return cfg
}

func runE2E(t *testing.T, cfg *params.SimConfig) *simulation.Simulation {
	sim, err := simulation.New(cfg)
	require.NoError(t, err)
	sim.Run()
	checkInvariants(t, sim)
	return sim
}

// checkInvariants verifies the global chain properties on every peer.
func checkInvariants(t *testing.T, sim *simulation.Simulation) {
	n := uint64(sim.Config().NumPeers)
	var createdTotal uint64
	for _, p := range sim.Peers() {
		l := p.Ledger()
		for _, id := range l.AcceptedIDs() {
			b, ok := l.Get(id)
			require.True(t, ok)

			// balance conservation: initial money plus one reward per block
			var sum uint64
			for _, bal := range b.Balances {
				sum += bal
			}
			want := n*params.InitialBalance + params.BlockReward*uint64(b.Length-1)
			assert.Equal(t, want, sum, "peer %d block %d", p.ID(), id)

			if id == blockchain.GenesisBlockID {
				continue
			}
			// replaying the block on its parent reproduces its vector
			assert.NoError(t, l.Validate(b), "peer %d block %d", p.ID(), id)
			// accepted parents only
			assert.True(t, l.Has(b.ParentID), "peer %d block %d has unaccepted parent", p.ID(), id)
			assert.False(t, l.HasOrphan(b.ParentID))
			// attribution: the creator actually mined it
			assert.True(t, sim.Peer(b.Creator).CreatedBlock(id))
			// the head is maximal
			assert.True(t, b.Length <= l.Head().Length, "peer %d head not maximal", p.ID())
		}
		createdTotal += uint64(len(p.CreatedBlocks()))

		if p.Kind().IsSelfish() {
			// the hidden chain must thread from the reveal pointer to the
			// private tip
			if chain := p.HiddenChain(); len(chain) > 0 {
				assert.Equal(t, l.Head().ID, chain[len(chain)-1])
			} else {
				assert.Equal(t, l.Head().ID, p.RevealID())
			}
		}
	}
	// every minted block has exactly one creator
	assert.Equal(t, sim.Arena().TotalBlocks()-1, createdTotal)
}

// Two honest peers with negligible attackers converge on one chain.
func TestE2ETwoPeersConverge(t *testing.T) {
	cfg := e2eConfig(2, 1e-4, 1e-4, true)
	cfg.BlockLimit = 10
	sim := runE2E(t, cfg)

	p0, p1 := sim.Peer(0), sim.Peer(1)
	assert.Equal(t, simulation.Honest, p0.Kind(), "a two-peer network has no selfish slots")
	assert.Equal(t, p0.Ledger().Head().ID, p1.Ledger().Head().ID)
	assert.Zero(t, p0.Ledger().OrphanCount())
	assert.Zero(t, p1.Ledger().OrphanCount())

	m := ComputeMetrics(sim)
	assert.True(t, m.MPUOverall >= 0.9, "MPU overall %v", m.MPUOverall)
}

// A 0.45-hash selfish miner profits beyond its hash share.
func TestE2EStrongSelfish(t *testing.T) {
	sim := runE2E(t, e2eConfig(10, 0.45, 1e-4, true))
	m := ComputeMetrics(sim)

	require.True(t, m.Created0 > 0)
	assert.True(t, m.MPUSelfish0 > 0.6, "selfish MPU %v", m.MPUSelfish0)

	share := float64(m.InChain0) / float64(m.LongestChainLength-1)
	assert.True(t, share > 0.45, "selfish chain share %v", share)
}

// Two balanced selfish miners fork the network heavily.
func TestE2EBalancedSelfishPair(t *testing.T) {
	sim := runE2E(t, e2eConfig(10, 0.3, 0.3, true))
	m := ComputeMetrics(sim)

	assert.True(t, m.MPUOverall < 0.7, "MPU overall %v", m.MPUOverall)
	assert.True(t, m.MPUSelfish0 > 0, "miner 0 MPU")
	assert.True(t, m.MPUSelfish1 > 0, "miner 1 MPU")
}

// With the stop condition the freeze drain flushes every hidden block.
func TestE2EFreezeFlush(t *testing.T) {
	sim := runE2E(t, e2eConfig(6, 0.4, 1e-4, true))

	p0 := sim.Peer(0)
	assert.Empty(t, p0.HiddenChain())
	assert.Equal(t, p0.Ledger().Head().ID, p0.RevealID())
}

// Identical configuration and seed give byte-identical artifacts.
func TestE2EDeterminism(t *testing.T) {
	results := make([][]byte, 2)
	var metrics [2]Metrics
	for i := range results {
		dir, err := ioutil.TempDir("", "powsim-e2e")
		require.NoError(t, err)
		defer os.RemoveAll(dir)

		cfg := e2eConfig(10, 0.3, 0.3, false)
		cfg.OutputDir = dir
		sim := runE2E(t, cfg)
		metrics[i] = ComputeMetrics(sim)

		require.NoError(t, PrepareDirs(dir))
		require.NoError(t, WriteResults(sim, dir))
		data, err := ioutil.ReadFile(filepath.Join(dir, "Results", "peer_3.txt"))
		require.NoError(t, err)
		results[i] = data
	}
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, metrics[0], metrics[1])
}

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

package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powsim/powsim/blockchain"
	"github.com/powsim/powsim/params"
)

func TestNewAssignsRoles(t *testing.T) {
	sim := newTestSim(t, 10, 0)

	assert.Equal(t, Selfish1, sim.Peer(0).Kind())
	assert.Equal(t, Selfish2, sim.Peer(1).Kind())
	for i := 2; i < 10; i++ {
		assert.Equal(t, Honest, sim.Peer(blockchain.PeerID(i)).Kind(), "peer %d", i)
	}
}

func TestHashPowerSplit(t *testing.T) {
	cfg := params.DefaultSimConfig()
	cfg.NumPeers = 10
	cfg.HashSelfish0 = 0.4
	cfg.HashSelfish1 = 0.2
	sim, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, 0.4, sim.Peer(0).HashPower())
	assert.Equal(t, 0.2, sim.Peer(1).HashPower())
	honestShare := (1 - 0.4 - 0.2) / 8
	var total float64
	for _, p := range sim.Peers() {
		if p.Kind() == Honest {
			assert.InDelta(t, honestShare, p.HashPower(), 1e-12)
		}
		total += p.HashPower()
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestHashFractionClamped(t *testing.T) {
	cfg := params.DefaultSimConfig()
	cfg.NumPeers = 10
	cfg.HashSelfish0 = 0
	cfg.HashSelfish1 = 0
	sim, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, params.MinHashFraction, sim.Peer(0).HashPower())
	assert.Equal(t, params.MinHashFraction, sim.Peer(1).HashPower())
}

func TestTinyNetworkFallsBackToHonest(t *testing.T) {
	sim := newTestSim(t, 2, 0)
	assert.Equal(t, Honest, sim.Peer(0).Kind())
	assert.Equal(t, Honest, sim.Peer(1).Kind())
}

func TestBootstrapSchedulesAllPeers(t *testing.T) {
	sim := newTestSim(t, 8, 0)
	sim.Bootstrap()

	evs := drainEvents(sim)
	assert.Equal(t, 8, countKind(evs, TxGen))
	assert.Equal(t, 8, countKind(evs, BlockGen))
}

func TestRunStopsAtBlockLimit(t *testing.T) {
	cfg := params.DefaultSimConfig()
	cfg.NumPeers = 6
	cfg.MeanBlockTime = 5000
	cfg.MeanTxInterval = 500
	sim, err := New(cfg)
	require.NoError(t, err)

	sim.Run()
	assert.True(t, sim.LimitReached())

	// some ledger reached the limit
	reached := false
	for _, p := range sim.Peers() {
		if p.Ledger().EdgeCount() >= cfg.BlockLimit {
			reached = true
		}
	}
	assert.True(t, reached)
}

func TestFreezeDrainEmptiesQueue(t *testing.T) {
	cfg := params.DefaultSimConfig()
	cfg.NumPeers = 6
	cfg.MeanBlockTime = 5000
	cfg.MeanTxInterval = 500
	cfg.StopCondition = true
	sim, err := New(cfg)
	require.NoError(t, err)

	sim.Run()
	assert.True(t, sim.LimitReached())
	assert.Zero(t, sim.sched.Len(), "freeze mode must drain every event")
}

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

package blockchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powsim/powsim/params"
)

// mineOn builds a valid empty block (coinbase only) on top of parent.
func mineOn(arena *Arena, parent *Block, creator PeerID, ts float64) *Block {
	cb := arena.NewCoinbase(creator, ts)
	b := arena.NewBlock(parent, creator, ts, cb)
	b.Balances[creator] += params.BlockReward
	return b
}

func TestArenaGenesis(t *testing.T) {
	arena := NewArena(4)
	gen := arena.Genesis()

	assert.Equal(t, GenesisBlockID, gen.ID)
	assert.Equal(t, 1, gen.Length)
	assert.Equal(t, NoPeer, gen.Creator)
	require.Len(t, gen.Balances, 4)
	for _, bal := range gen.Balances {
		assert.Equal(t, params.InitialBalance, bal)
	}
	assert.Equal(t, params.FirstBlockID, uint64(arena.TotalBlocks()))
}

func TestArenaMonotonicIDs(t *testing.T) {
	arena := NewArena(3)
	tx1 := arena.NewTransaction(0, 1, 5, 1)
	tx2 := arena.NewTransaction(1, 2, 7, 2)
	assert.Equal(t, TxID(params.FirstTxID), tx1.ID)
	assert.Equal(t, tx1.ID+1, tx2.ID)

	b1 := mineOn(arena, arena.Genesis(), 0, 10)
	b2 := mineOn(arena, b1, 1, 20)
	assert.Equal(t, BlockID(params.FirstBlockID), b1.ID)
	assert.Equal(t, b1.ID+1, b2.ID)
	assert.Equal(t, uint64(3), arena.TotalBlocks())
}

// Every block must satisfy sum(balances) == n*initial + reward*(length-1).
func TestBalanceSumInvariant(t *testing.T) {
	n := 5
	arena := NewArena(n)
	b := arena.Genesis()
	for i := 0; i < 6; i++ {
		b = mineOn(arena, b, PeerID(i%n), float64(i))
		var sum uint64
		for _, bal := range b.Balances {
			sum += bal
		}
		want := uint64(n)*params.InitialBalance + params.BlockReward*uint64(b.Length-1)
		assert.Equal(t, want, sum, "block %d", b.ID)
	}
}

func TestValidate(t *testing.T) {
	arena := NewArena(3)
	l := NewLedger(0, arena.Genesis())

	cb := arena.NewCoinbase(1, 5)
	b := arena.NewBlock(arena.Genesis(), 1, 5, cb)
	b.Balances[1] += params.BlockReward
	tx := arena.NewTransaction(2, 0, 30, 3)
	b.Balances[2] -= tx.Amount
	b.Balances[0] += tx.Amount
	b.Txns = append(b.Txns, tx)

	assert.NoError(t, l.Validate(b))

	// tampered balance vector
	bad := arena.NewBlock(arena.Genesis(), 1, 6, arena.NewCoinbase(1, 6))
	bad.Balances[1] += params.BlockReward + 1
	err := l.Validate(bad)
	assert.Equal(t, ErrInvalidBlock, err)
	assert.True(t, l.IsBad(bad.ID))

	// unknown parent
	far := arena.NewBlock(b, 1, 7, arena.NewCoinbase(1, 7))
	assert.Equal(t, ErrOrphanBlock, l.Validate(far))
}

func TestAdvanceHeadFirstSeen(t *testing.T) {
	arena := NewArena(2)
	l := NewLedger(0, arena.Genesis())

	b1 := mineOn(arena, arena.Genesis(), 0, 1)
	b2 := mineOn(arena, arena.Genesis(), 1, 2)

	l.Accept(b1, 1)
	require.True(t, l.AdvanceHead(b1))

	// same length: the first-seen tip stays
	l.Accept(b2, 2)
	assert.False(t, l.AdvanceHead(b2))
	assert.Equal(t, b1.ID, l.Head().ID)

	// strictly longer: the head moves
	b3 := mineOn(arena, b2, 1, 3)
	l.Accept(b3, 3)
	assert.True(t, l.AdvanceHead(b3))
	assert.Equal(t, b3.ID, l.Head().ID)
}

func TestOrphanPool(t *testing.T) {
	arena := NewArena(2)
	l := NewLedger(0, arena.Genesis())

	b1 := mineOn(arena, arena.Genesis(), 0, 1)
	b2 := mineOn(arena, b1, 0, 2)
	b3 := mineOn(arena, b2, 1, 3)

	l.AddOrphan(b2)
	l.AddOrphan(b3)
	assert.True(t, l.HasOrphan(b2.ID))
	assert.Equal(t, 2, l.OrphanCount())

	// no accepted parent edge yet
	assert.Empty(t, l.TakeOrphanChildren(GenesisBlockID))

	taken := l.TakeOrphanChildren(b1.ID)
	require.Len(t, taken, 1)
	assert.Equal(t, b2.ID, taken[0].ID)
	assert.False(t, l.HasOrphan(b2.ID))

	taken = l.TakeOrphanChildren(b2.ID)
	require.Len(t, taken, 1)
	assert.Equal(t, b3.ID, taken[0].ID)
	assert.Equal(t, 0, l.OrphanCount())
}

func TestLongestChainWalk(t *testing.T) {
	arena := NewArena(2)
	l := NewLedger(0, arena.Genesis())

	b1 := mineOn(arena, arena.Genesis(), 0, 1)
	b2 := mineOn(arena, b1, 1, 2)
	l.Accept(b1, 1)
	l.AdvanceHead(b1)
	l.Accept(b2, 2)
	l.AdvanceHead(b2)

	assert.Equal(t, []BlockID{b2.ID, b1.ID, GenesisBlockID}, l.LongestChain())
	assert.Equal(t, 2, l.EdgeCount())
	assert.Equal(t, 3, l.AcceptedCount())
}

func TestArrivalOrder(t *testing.T) {
	arena := NewArena(2)
	l := NewLedger(0, arena.Genesis())

	b1 := mineOn(arena, arena.Genesis(), 0, 1)
	b2 := mineOn(arena, b1, 0, 2)

	// the child arrives first as an orphan, the parent later
	l.RecordArrival(b2.ID, 5)
	l.AddOrphan(b2)
	l.RecordArrival(b1.ID, 7)
	l.Accept(b1, 7)
	for _, o := range l.TakeOrphanChildren(b1.ID) {
		l.Accept(o, 7)
	}

	assert.Equal(t, []BlockID{GenesisBlockID, b2.ID, b1.ID}, l.ArrivalOrder())
	at, ok := l.Arrival(b2.ID)
	require.True(t, ok)
	// promotion re-stamps the orphan's arrival
	assert.Equal(t, 7.0, at)
}

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

import "github.com/powsim/powsim/params"

// Arena mints every transaction and block of a run and hands out the
// global monotonic ids. It keeps only the genesis block and the counters;
// minted values are not stored here and cannot be looked up by id. It
// belongs to the Simulation; peers hold the pointers it returns but never
// mint ids themselves.
type Arena struct {
	genesis   *Block
	nextTx    TxID
	nextBlock BlockID
}

// NewArena builds the arena together with the genesis block shared by
// all n peers.
func NewArena(n int) *Arena {
	balances := make([]uint64, n)
	for i := range balances {
		balances[i] = params.InitialBalance
	}
	gen := &Block{
		ID:       GenesisBlockID,
		ParentID: GenesisBlockID,
		Length:   1,
		Time:     0,
		Creator:  NoPeer,
		Balances: balances,
	}
	return &Arena{
		genesis:   gen,
		nextTx:    TxID(params.FirstTxID),
		nextBlock: BlockID(params.FirstBlockID),
	}
}

// Genesis returns the shared genesis block.
func (a *Arena) Genesis() *Block {
	return a.genesis
}

// NewTransaction mints a transfer transaction.
func (a *Arena) NewTransaction(from, to PeerID, amount uint64, ts float64) *Transaction {
	tx := &Transaction{
		ID:        a.nextTx,
		From:      from,
		To:        to,
		Amount:    amount,
		Timestamp: ts,
	}
	a.nextTx++
	return tx
}

// NewCoinbase mints the reward transaction for a block creator.
func (a *Arena) NewCoinbase(creator PeerID, ts float64) *Transaction {
	tx := &Transaction{
		ID:        a.nextTx,
		From:      creator,
		To:        NoPeer,
		Amount:    params.BlockReward,
		Timestamp: ts,
		Coinbase:  true,
	}
	a.nextTx++
	return tx
}

// NewBlock starts a block on top of parent for the given creator: fresh
// id, length parent+1, the parent's balance vector copied, the coinbase
// placed first. The creator applies transactions and the reward credit
// before inserting the block into its ledger; from that point on the
// block is immutable.
func (a *Arena) NewBlock(parent *Block, creator PeerID, ts float64, coinbase *Transaction) *Block {
	balances := make([]uint64, len(parent.Balances))
	copy(balances, parent.Balances)
	b := &Block{
		ID:       a.nextBlock,
		ParentID: parent.ID,
		Length:   parent.Length + 1,
		Time:     ts,
		Creator:  creator,
		Txns:     []*Transaction{coinbase},
		Balances: balances,
	}
	a.nextBlock++
	return b
}

// TotalBlocks counts every block ever minted, genesis included.
func (a *Arena) TotalBlocks() uint64 {
	return uint64(a.nextBlock)
}

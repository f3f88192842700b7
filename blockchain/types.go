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

// Package blockchain holds the simulator's shared immutable values
// (transactions, blocks) and the per-peer ledger built from them.
// Blocks and transactions are minted by the arena, which hands out their
// ids; ledgers index blocks by id and events carry pointers to them.
package blockchain

// PeerID indexes a peer in the simulation. Balance vectors are indexed
// by PeerID.
type PeerID int

// NoPeer marks an absent peer reference (coinbase receiver, genesis creator).
const NoPeer PeerID = -1

// TxID is a globally unique, monotonically increasing transaction id.
type TxID uint64

// BlockID is a globally unique, monotonically increasing block id.
// The genesis block is id 0 at every peer.
type BlockID uint64

// GenesisBlockID is the id of the shared genesis block.
const GenesisBlockID BlockID = 0

// Transaction is an immutable transfer of Amount coins from From to To,
// or a coinbase mint when Coinbase is set (To is NoPeer then).
type Transaction struct {
	ID        TxID
	From      PeerID
	To        PeerID
	Amount    uint64
	Timestamp float64
	Coinbase  bool
}

// Block is a node of the block-tree. Balances is the account vector after
// applying Txns on top of the parent's vector; Txns keeps the coinbase
// first. A block is immutable once its creator inserts it into a ledger.
type Block struct {
	ID       BlockID
	ParentID BlockID
	Length   int
	Time     float64
	Creator  PeerID
	Txns     []*Transaction
	Balances []uint64
}

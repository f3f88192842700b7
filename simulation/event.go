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

// Package simulation drives the discrete-event run: the global event
// queue, the peers with their honest or selfish behavior, and the
// Simulation struct owning every piece of shared state.
package simulation

import "github.com/powsim/powsim/blockchain"

// EventKind discriminates the four event payloads.
type EventKind int

const (
	TxGen EventKind = iota
	TxRec
	BlockGen
	BlockRec
)

func (k EventKind) String() string {
	switch k {
	case TxGen:
		return "Transaction_Gen"
	case TxRec:
		return "Transaction_Rec"
	case BlockGen:
		return "Block_Gen"
	case BlockRec:
		return "Block_Rec"
	}
	return "Unknown"
}

// Event is one timestamped entry of the global queue. Which reference
// fields are set depends on Kind: TxGen uses Sender; TxRec uses Sender
// (the forwarder), Receiver and Txn; BlockGen uses Generator; BlockRec
// uses Sender (the forwarder), Receiver and Block.
type Event struct {
	Time      float64
	Kind      EventKind
	Sender    blockchain.PeerID
	Receiver  blockchain.PeerID
	Generator blockchain.PeerID
	Txn       *blockchain.Transaction
	Block     *blockchain.Block

	// seq breaks timestamp ties in insertion order
	seq uint64
}

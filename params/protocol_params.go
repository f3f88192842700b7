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

package params

const (
	// BlockReward is the coinbase credit minted to a block's creator.
	BlockReward uint64 = 50

	// InitialBalance is every peer's balance in the genesis block.
	InitialBalance uint64 = 114

	// MaxBlockTransactions caps the transactions per block, coinbase included.
	MaxBlockTransactions = 100

	// MinPeerDegree and MaxPeerDegree bound each node's degree in the
	// generated topology.
	MinPeerDegree = 3
	MaxPeerDegree = 6

	// MinHashFraction is the floor applied to the selfish miners' hash
	// power fractions.
	MinHashFraction = 1e-4

	// FastLinkMbps and SlowLinkMbps are the two link capacity classes.
	FastLinkMbps = 100
	SlowLinkMbps = 5

	// QueueDelayNumerator: the per-hop queuing delay is drawn from
	// Exp(QueueDelayNumerator / capacity) msec.
	QueueDelayNumerator = 96.0

	// PropDelayMinMsec and PropDelayMaxMsec bound the uniform
	// propagation delay draw.
	PropDelayMinMsec = 10.0
	PropDelayMaxMsec = 500.0

	// FirstTxID and FirstBlockID are the starting values of the global
	// monotonic counters. Genesis takes block id 0.
	FirstTxID    uint64 = 10
	FirstBlockID uint64 = 1
)

// DefaultBlockLimit returns the accepted-block count at which the
// simulation stops scheduling honest work: twice the peer count.
func DefaultBlockLimit(numPeers int) int {
	return 2 * numPeers
}

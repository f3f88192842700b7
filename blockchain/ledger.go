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
	"github.com/powsim/powsim/common"
	"github.com/powsim/powsim/log"
)

var logger = log.NewModuleLogger(log.Blockchain)

const badBlockCacheSize = 512

// Ledger is one peer's view of the block-tree: accepted blocks, the
// orphan pool, arrival times and the longest-chain head. Accepted blocks
// always have accepted parents; an orphan's parent is never accepted.
type Ledger struct {
	owner PeerID

	accepted map[BlockID]*Block
	children map[BlockID][]BlockID

	orphans     map[BlockID]*Block
	orphanOrder []BlockID

	arrival      map[BlockID]float64
	arrivalOrder []BlockID

	head  *Block
	edges int

	// blocks that failed validation once; repeat arrivals are dropped
	// without replaying them again
	badBlocks common.Cache
}

// NewLedger builds a ledger holding only the genesis block.
func NewLedger(owner PeerID, genesis *Block) *Ledger {
	return &Ledger{
		owner:        owner,
		accepted:     map[BlockID]*Block{genesis.ID: genesis},
		children:     make(map[BlockID][]BlockID),
		orphans:      make(map[BlockID]*Block),
		arrival:      map[BlockID]float64{genesis.ID: 0},
		arrivalOrder: []BlockID{genesis.ID},
		head:         genesis,
		badBlocks:    common.NewCache(badBlockCacheSize),
	}
}

// Owner returns the peer this ledger belongs to.
func (l *Ledger) Owner() PeerID { return l.owner }

// Head returns the tip of the locally-longest chain.
func (l *Ledger) Head() *Block { return l.head }

// SetHead moves the longest-chain pointer unconditionally. Used by block
// creators and by the selfish override transition; fork resolution goes
// through AdvanceHead instead.
func (l *Ledger) SetHead(b *Block) { l.head = b }

// AdvanceHead moves the head only on a strictly longer chain, keeping the
// first-seen block on ties. Reports whether the head moved.
func (l *Ledger) AdvanceHead(b *Block) bool {
	if b.Length > l.head.Length {
		l.head = b
		return true
	}
	return false
}

// Has reports whether the block is accepted.
func (l *Ledger) Has(id BlockID) bool {
	_, ok := l.accepted[id]
	return ok
}

// HasOrphan reports whether the block sits in the orphan pool.
func (l *Ledger) HasOrphan(id BlockID) bool {
	_, ok := l.orphans[id]
	return ok
}

// Get returns an accepted block.
func (l *Ledger) Get(id BlockID) (*Block, bool) {
	b, ok := l.accepted[id]
	return b, ok
}

// IsBad reports whether the block already failed validation here.
func (l *Ledger) IsBad(id BlockID) bool {
	return l.badBlocks.Contains(id)
}

// RecordArrival stamps the local arrival time of a block.
func (l *Ledger) RecordArrival(id BlockID, t float64) {
	if _, ok := l.arrival[id]; !ok {
		l.arrivalOrder = append(l.arrivalOrder, id)
	}
	l.arrival[id] = t
}

// Arrival returns the recorded arrival time.
func (l *Ledger) Arrival(id BlockID) (float64, bool) {
	t, ok := l.arrival[id]
	return t, ok
}

// ArrivalTimes exposes the whole arrival map for reporting.
func (l *Ledger) ArrivalTimes() map[BlockID]float64 {
	return l.arrival
}

// ArrivalOrder returns every stamped block id in first-arrival order.
func (l *Ledger) ArrivalOrder() []BlockID {
	return l.arrivalOrder
}

// Accept adds a validated block whose parent is accepted: stores it,
// records the parent edge and stamps the arrival time.
func (l *Ledger) Accept(b *Block, t float64) {
	l.accepted[b.ID] = b
	l.children[b.ParentID] = append(l.children[b.ParentID], b.ID)
	l.RecordArrival(b.ID, t)
	l.edges++
}

// AddOrphan parks a block whose parent is unknown.
func (l *Ledger) AddOrphan(b *Block) {
	l.orphans[b.ID] = b
	l.orphanOrder = append(l.orphanOrder, b.ID)
}

// TakeOrphanChildren removes and returns, in arrival order, the orphans
// whose parent is the given block.
func (l *Ledger) TakeOrphanChildren(parent BlockID) []*Block {
	var out []*Block
	var keep []BlockID
	for _, id := range l.orphanOrder {
		b, ok := l.orphans[id]
		if !ok {
			continue
		}
		if b.ParentID == parent {
			out = append(out, b)
			delete(l.orphans, id)
		} else {
			keep = append(keep, id)
		}
	}
	l.orphanOrder = keep
	return out
}

// Validate replays the block's transactions on its parent's balance
// vector and compares the result with the block's own vector. The parent
// must be accepted. A failure is remembered in the bad-block cache.
func (l *Ledger) Validate(b *Block) error {
	parent, ok := l.accepted[b.ParentID]
	if !ok {
		return ErrOrphanBlock
	}
	balances := make([]uint64, len(parent.Balances))
	copy(balances, parent.Balances)
	for _, tx := range b.Txns {
		if tx.Coinbase {
			balances[tx.From] += tx.Amount
			continue
		}
		balances[tx.From] -= tx.Amount
		balances[tx.To] += tx.Amount
	}
	for i, bal := range balances {
		if bal != b.Balances[i] {
			l.badBlocks.Add(b.ID, struct{}{})
			logger.Debug("invalid block dropped", "peer", l.owner, "block", b.ID, "account", i)
			return ErrInvalidBlock
		}
	}
	return nil
}

// Children returns the accepted children of a block, in acceptance order.
func (l *Ledger) Children(id BlockID) []BlockID {
	return l.children[id]
}

// EdgeCount is the number of parent edges in the accepted tree, i.e. the
// accepted blocks excluding genesis. The run's block limit is measured
// against it.
func (l *Ledger) EdgeCount() int { return l.edges }

// AcceptedCount counts accepted blocks, genesis included.
func (l *Ledger) AcceptedCount() int { return len(l.accepted) }

// OrphanCount counts parked orphans.
func (l *Ledger) OrphanCount() int { return len(l.orphans) }

// AcceptedIDs returns the accepted block ids in no particular order.
func (l *Ledger) AcceptedIDs() []BlockID {
	ids := make([]BlockID, 0, len(l.accepted))
	for id := range l.accepted {
		ids = append(ids, id)
	}
	return ids
}

// OrphanIDs returns the parked block ids in arrival order.
func (l *Ledger) OrphanIDs() []BlockID {
	ids := make([]BlockID, 0, len(l.orphans))
	for _, id := range l.orphanOrder {
		if _, ok := l.orphans[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// LongestChain walks head to genesis and returns the block ids tip-first.
func (l *Ledger) LongestChain() []BlockID {
	var chain []BlockID
	b := l.head
	for b.ID != GenesisBlockID {
		chain = append(chain, b.ID)
		parent, ok := l.accepted[b.ParentID]
		if !ok {
			logger.Crit("accepted block with missing parent", "peer", l.owner, "block", b.ID)
		}
		b = parent
	}
	chain = append(chain, GenesisBlockID)
	return chain
}

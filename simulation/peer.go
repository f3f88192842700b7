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
	"gopkg.in/fatih/set.v0"

	"github.com/powsim/powsim/blockchain"
	"github.com/powsim/powsim/params"
)

// PeerKind tags a peer's mining behavior.
type PeerKind int

const (
	Honest PeerKind = iota
	Selfish1
	Selfish2
)

// IsSelfish reports whether the peer runs the withholding strategy.
func (k PeerKind) IsSelfish() bool { return k != Honest }

func (k PeerKind) String() string {
	switch k {
	case Honest:
		return "honest"
	case Selfish1:
		return "selfish1"
	case Selfish2:
		return "selfish2"
	}
	return "unknown"
}

// Peer is one network participant. All four event handlers mutate only
// the peer's own state and push future events through the Simulation.
type Peer struct {
	id        blockchain.PeerID
	kind      PeerKind
	slow      bool
	hashPower float64
	neighbors []blockchain.PeerID

	ledger *blockchain.Ledger

	// pending holds known-but-unmined transaction ids; pendingOrder keeps
	// their insertion order for deterministic block filling. pushed holds
	// ids already committed on the local longest chain.
	pending      *set.Set
	pendingOrder []*blockchain.Transaction
	pushed       *set.Set

	// created is the set of block ids this peer mined
	created      *set.Set
	createdOrder []blockchain.BlockID

	// selfish is nil for honest peers
	selfish *selfishState
}

func newPeer(id blockchain.PeerID, kind PeerKind, slow bool, hashPower float64,
	neighbors []blockchain.PeerID, genesis *blockchain.Block) *Peer {
	p := &Peer{
		id:        id,
		kind:      kind,
		slow:      slow,
		hashPower: hashPower,
		neighbors: neighbors,
		ledger:    blockchain.NewLedger(id, genesis),
		pending:   set.New(),
		pushed:    set.New(),
		created:   set.New(),
	}
	if kind.IsSelfish() {
		p.selfish = newSelfishState(genesis.ID)
	}
	return p
}

// ID returns the peer id.
func (p *Peer) ID() blockchain.PeerID { return p.id }

// Kind returns the peer's behavior tag.
func (p *Peer) Kind() PeerKind { return p.kind }

// Slow reports whether the peer sits on slow links.
func (p *Peer) Slow() bool { return p.slow }

// HashPower returns the peer's fractional hash power.
func (p *Peer) HashPower() float64 { return p.hashPower }

// Neighbors returns the peer's neighbor ids.
func (p *Peer) Neighbors() []blockchain.PeerID { return p.neighbors }

// Ledger returns the peer's chain view.
func (p *Peer) Ledger() *blockchain.Ledger { return p.ledger }

// Balance is the peer's spendable balance: its account in the balance
// vector of the longest-chain tip.
func (p *Peer) Balance() uint64 {
	return p.ledger.Head().Balances[p.id]
}

// CreatedBlocks returns the ids of blocks this peer mined, oldest first.
func (p *Peer) CreatedBlocks() []blockchain.BlockID { return p.createdOrder }

// CreatedBlock reports whether this peer mined the given block.
func (p *Peer) CreatedBlock(id blockchain.BlockID) bool {
	return p.created.Has(uint64(id))
}

func (p *Peer) markCreated(id blockchain.BlockID) {
	p.created.Add(uint64(id))
	p.createdOrder = append(p.createdOrder, id)
}

func (p *Peer) addPending(tx *blockchain.Transaction) {
	if p.pending.Has(uint64(tx.ID)) {
		return
	}
	p.pending.Add(uint64(tx.ID))
	p.pendingOrder = append(p.pendingOrder, tx)
}

// createTransaction handles TxGen: pay a random neighbor a random tenth
// of the balance, gossip the transaction, and rearm the generator.
func (p *Peer) createTransaction(sim *Simulation, ev *Event) {
	if p.Balance() <= 1 {
		return
	}
	t := ev.Time
	to := p.neighbors[sim.rnd.Intn(len(p.neighbors))]
	amount := uint64(sim.rnd.IntRange(1, int64(p.Balance()))) / 10

	if amount >= p.Balance() {
		return
	}
	tx := sim.arena.NewTransaction(p.id, to, amount, t)
	p.addPending(tx)
	txsGeneratedCounter.Inc(1)
	sim.journalTransaction(p.id, tx)

	next := t + sim.rnd.Exp(sim.cfg.MeanTxInterval)
	sim.schedule(&Event{Time: next, Kind: TxGen, Sender: p.id})

	p.forwardTransaction(sim, t, tx, ev.Sender)
}

// forwardTransaction gossips a transaction to every neighbor except the
// transaction's originator and the peer it came from.
func (p *Peer) forwardTransaction(sim *Simulation, t float64, tx *blockchain.Transaction, from blockchain.PeerID) {
	for _, r := range p.neighbors {
		if r == tx.From || r == from {
			continue
		}
		delay := sim.latencyTo(p.id, r, 1)
		sim.schedule(&Event{
			Time:     t + delay,
			Kind:     TxRec,
			Sender:   p.id,
			Receiver: r,
			Txn:      tx,
		})
	}
}

// receiveTransaction handles TxRec. The admission guard is kept exactly
// as the reference network behaves: a transaction is admitted when it is
// not pending or when it was already pushed, and only then re-gossiped.
func (p *Peer) receiveTransaction(sim *Simulation, ev *Event) {
	tx := ev.Txn
	if !p.pending.Has(uint64(tx.ID)) || p.pushed.Has(uint64(tx.ID)) {
		p.addPending(tx)
		txsRelayedCounter.Inc(1)
		p.forwardTransaction(sim, ev.Time, tx, ev.Sender)
	}
}

// createBlock handles BlockGen: seal a block on the local head from the
// pending pool and either broadcast it (honest) or withhold it
// (selfish). In freeze mode honest generation is a no-op and selfish
// generation flushes the hidden chain instead.
func (p *Peer) createBlock(sim *Simulation, ev *Event, freeze bool) {
	if freeze {
		if p.kind.IsSelfish() {
			p.flushHidden(sim, ev.Time)
		}
		return
	}

	t := ev.Time
	coinbase := sim.arena.NewCoinbase(p.id, t)
	b := sim.arena.NewBlock(p.ledger.Head(), p.id, t, coinbase)
	p.markCreated(b.ID)
	b.Balances[p.id] += params.BlockReward

	var remaining []*blockchain.Transaction
	for i, tx := range p.pendingOrder {
		if len(b.Txns) >= params.MaxBlockTransactions {
			remaining = append(remaining, p.pendingOrder[i:]...)
			break
		}
		if tx.Amount > b.Balances[tx.From] {
			remaining = append(remaining, tx)
			continue
		}
		b.Balances[tx.From] -= tx.Amount
		b.Balances[tx.To] += tx.Amount
		b.Txns = append(b.Txns, tx)
		p.pushed.Add(uint64(tx.ID))
		p.pending.Remove(uint64(tx.ID))
	}
	p.pendingOrder = remaining

	p.ledger.Accept(b, t)
	p.ledger.SetHead(b)
	blocksMinedCounter.Inc(1)

	if p.kind.IsSelfish() {
		p.withholdMined(sim, t, b)
	} else {
		p.broadcastBlock(sim, t, b)
	}

	next := t + sim.rnd.Exp(sim.cfg.MeanBlockTime/p.hashPower)
	sim.schedule(&Event{Time: next, Kind: BlockGen, Generator: p.id})
}

// broadcastBlock sends a block to every neighbor except its creator.
func (p *Peer) broadcastBlock(sim *Simulation, t float64, b *blockchain.Block) {
	for _, r := range p.neighbors {
		if r == b.Creator {
			continue
		}
		delay := sim.latencyTo(p.id, r, len(b.Txns))
		sim.schedule(&Event{
			Time:     t + delay,
			Kind:     BlockRec,
			Sender:   p.id,
			Receiver: r,
			Block:    b,
		})
	}
}

// receiveBlock handles BlockRec: de-duplicate, park orphans, validate,
// integrate the block together with any orphan subtree it unlocks, then
// resolve the fork honestly or through the selfish state machine.
func (p *Peer) receiveBlock(sim *Simulation, ev *Event, freeze bool) {
	t, b := ev.Time, ev.Block
	if p.ledger.HasOrphan(b.ID) || p.ledger.Has(b.ID) || p.ledger.IsBad(b.ID) {
		return
	}
	p.ledger.RecordArrival(b.ID, t)
	if !p.ledger.Has(b.ParentID) {
		p.ledger.AddOrphan(b)
		blocksOrphanedCounter.Inc(1)
		return
	}
	if err := p.ledger.Validate(b); err != nil {
		blocksInvalidCounter.Inc(1)
		return
	}

	// Integrate b and every orphan subtree it reconnects, breadth-first.
	// prev tracks the deepest block reached, first-discovered on ties.
	// Honest peers relay each accepted block; selfish peers stay silent
	// here so the private chain is not echoed back during catch-up.
	prev := b
	queue := []*blockchain.Block{b}
	for len(queue) > 0 {
		blk := queue[0]
		queue = queue[1:]
		p.ledger.Accept(blk, t)
		if blk.Length > prev.Length {
			prev = blk
		}
		if !p.kind.IsSelfish() {
			p.broadcastBlock(sim, t, blk)
		}
		queue = append(queue, p.ledger.TakeOrphanChildren(blk.ID)...)
	}

	if !p.kind.IsSelfish() {
		p.ledger.AdvanceHead(prev)
		return
	}
	if freeze {
		p.flushHidden(sim, t)
		return
	}
	p.resolveSelfish(sim, t, prev)
}

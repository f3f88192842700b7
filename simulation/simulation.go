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
	"github.com/powsim/powsim/blockchain"
	"github.com/powsim/powsim/log"
	"github.com/powsim/powsim/networks"
	"github.com/powsim/powsim/params"
)

// Journal receives the run's side outputs: per-peer event lines and
// created-transaction lines. A nil journal disables both.
type Journal interface {
	Event(ev *Event)
	Transaction(creator blockchain.PeerID, tx *blockchain.Transaction)
}

// Simulation owns every piece of shared run state: configuration, the
// seeded random source, the arena minting ids, the peers and the global
// event queue. The run is single-threaded; handlers borrow the
// Simulation to draw randomness and push events.
type Simulation struct {
	cfg     *params.SimConfig
	rnd     *networks.RandomSource
	latency *networks.LatencyModel
	graph   *networks.Graph
	slow    []bool
	arena   *blockchain.Arena
	peers   []*Peer
	sched   *Scheduler
	journal Journal
	logger  log.Logger

	limitReached bool
}

// New wires a simulation from a sanitized config: topology, link speeds,
// hash power split and one peer per node. Peers 0 and 1 run the selfish
// strategy; a network too small to hold honest peers besides them falls
// back to all-honest.
func New(cfg *params.SimConfig) (*Simulation, error) {
	if err := cfg.Sanitize(); err != nil {
		return nil, err
	}
	rnd := networks.NewRandomSource(cfg.Seed)
	slow := networks.AssignLinkSpeeds(rnd, cfg.NumPeers, cfg.PercentSlow)
	graph, err := networks.GenerateTopology(rnd, cfg.NumPeers)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:     cfg,
		rnd:     rnd,
		latency: networks.NewLatencyModel(rnd),
		graph:   graph,
		slow:    slow,
		arena:   blockchain.NewArena(cfg.NumPeers),
		sched:   NewScheduler(),
		logger:  log.NewModuleLogger(log.Simulation),
	}

	n := cfg.NumPeers
	allHonest := n < 3
	honestPool := 1 - cfg.HashSelfish0 - cfg.HashSelfish1
	honestShare := honestPool / float64(n)
	if !allHonest {
		honestShare = honestPool / float64(n-2)
	}

	genesis := s.arena.Genesis()
	for i := 0; i < n; i++ {
		kind := Honest
		hp := honestShare
		if !allHonest {
			switch i {
			case 0:
				kind = Selfish1
				hp = cfg.HashSelfish0
			case 1:
				kind = Selfish2
				hp = cfg.HashSelfish1
			}
		}
		raw := graph.Neighbors(i)
		neighbors := make([]blockchain.PeerID, len(raw))
		for j, v := range raw {
			neighbors[j] = blockchain.PeerID(v)
		}
		s.peers = append(s.peers, newPeer(blockchain.PeerID(i), kind, slow[i], hp, neighbors, genesis))
	}
	return s, nil
}

// SetJournal attaches the side-output sink.
func (s *Simulation) SetJournal(j Journal) { s.journal = j }

// Config returns the run configuration.
func (s *Simulation) Config() *params.SimConfig { return s.cfg }

// Arena returns the block/transaction store.
func (s *Simulation) Arena() *blockchain.Arena { return s.arena }

// Graph returns the peer topology.
func (s *Simulation) Graph() *networks.Graph { return s.graph }

// Peers returns all peers in id order.
func (s *Simulation) Peers() []*Peer { return s.peers }

// Peer returns the peer with the given id.
func (s *Simulation) Peer(id blockchain.PeerID) *Peer { return s.peers[id] }

// ObserverPeer is the honest peer the final metrics are measured at:
// index 3 by convention, clamped into range for tiny networks.
func (s *Simulation) ObserverPeer() *Peer {
	idx := 3
	if idx >= len(s.peers) {
		idx = len(s.peers) - 1
	}
	return s.peers[idx]
}

// LimitReached reports whether the run ended by hitting the block limit.
func (s *Simulation) LimitReached() bool { return s.limitReached }

func (s *Simulation) schedule(ev *Event) {
	if err := s.sched.Schedule(ev); err != nil {
		s.logger.Crit("event pushed after termination", "kind", ev.Kind.String(), "time", ev.Time)
	}
}

func (s *Simulation) latencyTo(from, to blockchain.PeerID, size int) float64 {
	return s.latency.Latency(s.slow[from], s.slow[to], size)
}

func (s *Simulation) journalEvent(ev *Event) {
	if s.journal != nil && s.cfg.SaveEvents {
		s.journal.Event(ev)
	}
}

func (s *Simulation) journalTransaction(creator blockchain.PeerID, tx *blockchain.Transaction) {
	if s.journal != nil {
		s.journal.Transaction(creator, tx)
	}
}

// Bootstrap schedules every peer's first transaction and first mining
// completion.
func (s *Simulation) Bootstrap() {
	for _, p := range s.peers {
		s.schedule(&Event{Time: s.rnd.Exp(s.cfg.MeanTxInterval), Kind: TxGen, Sender: p.id})
	}
	for _, p := range s.peers {
		s.schedule(&Event{Time: s.rnd.Exp(s.cfg.MeanBlockTime / p.hashPower), Kind: BlockGen, Generator: p.id})
	}
}

// Run bootstraps and drains the event queue. The main drain stops at the
// first BlockGen whose generator already accepted BlockLimit blocks
// beyond genesis; with StopCondition set that BlockGen and the remaining
// events are then handled in freeze mode, where honest mining is ignored, transactions
// are dropped and the selfish miners flush their hidden chains.
func (s *Simulation) Run() {
	s.Bootstrap()
	s.logger.Info("simulation started",
		"peers", s.cfg.NumPeers, "blockLimit", s.cfg.BlockLimit,
		"h0", s.cfg.HashSelfish0, "h1", s.cfg.HashSelfish1, "seed", s.cfg.Seed)

	for {
		ev, ok := s.sched.Pop()
		if !ok {
			break
		}
		eventsProcessedCounter.Inc(1)
		s.journalEvent(ev)
		switch ev.Kind {
		case TxGen:
			s.peers[ev.Sender].createTransaction(s, ev)
		case TxRec:
			s.peers[ev.Receiver].receiveTransaction(s, ev)
		case BlockGen:
			p := s.peers[ev.Generator]
			if p.ledger.EdgeCount() >= s.cfg.BlockLimit {
				s.limitReached = true
				if s.cfg.StopCondition {
					// the event that hits the limit is already frozen
					p.createBlock(s, ev, true)
				}
			} else {
				p.createBlock(s, ev, false)
			}
		case BlockRec:
			s.peers[ev.Receiver].receiveBlock(s, ev, false)
		}
		if s.limitReached {
			break
		}
	}

	if s.limitReached && s.cfg.StopCondition {
		s.drainFrozen()
	}
	s.sched.Terminate()
	s.logMetrics()
	s.logger.Info("simulation finished",
		"totalBlocks", s.arena.TotalBlocks(),
		"observerChainLength", s.ObserverPeer().Ledger().Head().Length)
}

// drainFrozen empties the queue after the block limit: only selfish
// flushes and block receptions still have effect.
func (s *Simulation) drainFrozen() {
	for {
		ev, ok := s.sched.Pop()
		if !ok {
			return
		}
		eventsProcessedCounter.Inc(1)
		s.journalEvent(ev)
		switch ev.Kind {
		case BlockGen:
			p := s.peers[ev.Generator]
			if p.kind.IsSelfish() {
				p.createBlock(s, ev, true)
			}
		case BlockRec:
			s.peers[ev.Receiver].receiveBlock(s, ev, true)
		}
	}
}

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

import "github.com/powsim/powsim/blockchain"

// selfishState is the withholding bookkeeping layered on a selfish peer.
// The private chain above revealID is threaded through hidden
// (parent id -> child id) and ends at the peer's ledger head.
type selfishState struct {
	// revealID is the most recent block already disclosed to the network
	revealID blockchain.BlockID

	// hidden maps each private block's parent to it
	hidden map[blockchain.BlockID]blockchain.BlockID

	// zeroState is set right after a race where the public chain caught
	// up to a private tip of lead one; the next mined block is released
	// immediately instead of withheld
	zeroState bool
}

func newSelfishState(genesis blockchain.BlockID) *selfishState {
	return &selfishState{
		revealID: genesis,
		hidden:   make(map[blockchain.BlockID]blockchain.BlockID),
	}
}

// RevealID returns the id of the last publicly disclosed block.
func (p *Peer) RevealID() blockchain.BlockID { return p.selfish.revealID }

// ZeroState reports the post-race immediate-release stance.
func (p *Peer) ZeroState() bool { return p.selfish.zeroState }

// HiddenChain returns the private block ids above revealID, closest
// ancestor first.
func (p *Peer) HiddenChain() []blockchain.BlockID {
	var chain []blockchain.BlockID
	id := p.selfish.revealID
	for id != p.ledger.Head().ID {
		next, ok := p.selfish.hidden[id]
		if !ok {
			break
		}
		id = next
		chain = append(chain, id)
	}
	return chain
}

// withholdMined records a freshly mined private block. In zero state the
// block is released at once to contest the public tip; otherwise it
// stays hidden.
func (p *Peer) withholdMined(sim *Simulation, t float64, b *blockchain.Block) {
	s := p.selfish
	s.hidden[b.ParentID] = b.ID
	if s.zeroState {
		p.broadcastBlock(sim, t, b)
		blocksReleasedCounter.Inc(1)
		s.zeroState = false
		return
	}
	blocksWithheldCounter.Inc(1)
}

// advanceReveal steps the reveal pointer one block up the private chain
// and broadcasts the block it now points at.
func (p *Peer) advanceReveal(sim *Simulation, t float64) {
	s := p.selfish
	next, ok := s.hidden[s.revealID]
	if !ok {
		sim.logger.Crit("hidden chain broken", "peer", p.id, "reveal", s.revealID)
	}
	s.revealID = next
	b, ok := p.ledger.Get(s.revealID)
	if !ok {
		sim.logger.Crit("revealed block not in ledger", "peer", p.id, "block", s.revealID)
	}
	p.broadcastBlock(sim, t, b)
	blocksReleasedCounter.Inc(1)
}

// flushHidden releases every hidden block up to the private tip.
func (p *Peer) flushHidden(sim *Simulation, t float64) {
	for p.selfish.revealID != p.ledger.Head().ID {
		p.advanceReveal(sim, t)
	}
}

// resolveSelfish applies the four release triggers after an honest block
// (and any orphan subtree) has been integrated. prev is the tip of the
// just-integrated subtree; the ledger head is still the private tip.
func (p *Peer) resolveSelfish(sim *Simulation, t float64, prev *blockchain.Block) {
	s := p.selfish
	head := p.ledger.Head()
	switch {
	case prev.Length == head.Length-1:
		// the public chain reached one behind the private tip: dump the
		// whole private chain to override it
		p.flushHidden(sim, t)

	case prev.Length > head.Length:
		// the public chain overtook; the private fork is dead. Adopt the
		// honest tip, nothing to broadcast.
		if s.zeroState {
			s.zeroState = false
		}
		p.ledger.SetHead(prev)
		s.revealID = prev.ID

	case prev.Length == head.Length && head.Creator == p.id:
		// 1 -> 0' race: the public chain matched our private tip. Reveal
		// it and bias the next mined block to immediate release.
		s.zeroState = true
		p.flushHidden(sim, t)

	default:
		// prev.Length < head.Length (or an equal-length head we did not
		// mine): the lead shrank by one; reveal just enough to stay level
		// with the public chain
		for {
			rb, ok := p.ledger.Get(s.revealID)
			if !ok {
				sim.logger.Crit("reveal pointer not in ledger", "peer", p.id, "block", s.revealID)
			}
			if rb.Length >= prev.Length {
				break
			}
			p.advanceReveal(sim, t)
		}
	}
}

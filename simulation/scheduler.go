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
	"container/heap"
	"errors"
)

// ErrAlreadyTerminated: an event was pushed after the scheduler finished
// its final drain.
var ErrAlreadyTerminated = errors.New("scheduler already terminated")

// eventQueue implements heap.Interface ordered by (Time, seq): earliest
// timestamp first, FIFO among equal timestamps.
type eventQueue []*Event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].Time != q[j].Time {
		return q[i].Time < q[j].Time
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x interface{}) {
	*q = append(*q, x.(*Event))
}

func (q *eventQueue) Pop() interface{} {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return ev
}

// Scheduler is the single global min-priority queue over simulation time.
type Scheduler struct {
	queue      eventQueue
	nextSeq    uint64
	terminated bool
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{queue: make(eventQueue, 0)}
}

// Schedule enqueues an event at its timestamp.
func (s *Scheduler) Schedule(ev *Event) error {
	if s.terminated {
		return ErrAlreadyTerminated
	}
	ev.seq = s.nextSeq
	s.nextSeq++
	heap.Push(&s.queue, ev)
	return nil
}

// Pop dequeues the earliest event.
func (s *Scheduler) Pop() (*Event, bool) {
	if len(s.queue) == 0 {
		return nil, false
	}
	return heap.Pop(&s.queue).(*Event), true
}

// Len returns the number of queued events.
func (s *Scheduler) Len() int { return len(s.queue) }

// Terminate rejects any further Schedule calls.
func (s *Scheduler) Terminate() { s.terminated = true }

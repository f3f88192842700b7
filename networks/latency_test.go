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

package networks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/powsim/powsim/params"
)

func TestLatencyLowerBound(t *testing.T) {
	m := NewLatencyModel(NewRandomSource(0))
	for i := 0; i < 100; i++ {
		// fast link: capacity 100 Mbps
		l := m.Latency(false, false, 10)
		assert.True(t, l >= params.PropDelayMinMsec+10*8/float64(params.FastLinkMbps),
			"latency %v below floor", l)
	}
}

func TestLatencySlowLink(t *testing.T) {
	m := NewLatencyModel(NewRandomSource(1))
	// one slow endpoint forces the 5 Mbps class; the transmission term
	// alone exceeds the fast-link one by 8*size*(1/5-1/100)
	size := 100
	l := m.Latency(true, false, size)
	assert.True(t, l >= params.PropDelayMinMsec+float64(size*8)/float64(params.SlowLinkMbps))
}

func TestLatencyFreshDraws(t *testing.T) {
	m := NewLatencyModel(NewRandomSource(2))
	a := m.Latency(false, false, 1)
	b := m.Latency(false, false, 1)
	assert.NotEqual(t, a, b, "per-message draws must be fresh")
}

func TestLatencyDeterministic(t *testing.T) {
	m1 := NewLatencyModel(NewRandomSource(9))
	m2 := NewLatencyModel(NewRandomSource(9))
	for i := 0; i < 10; i++ {
		assert.Equal(t, m1.Latency(false, true, i+1), m2.Latency(false, true, i+1))
	}
}

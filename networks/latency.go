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

import "github.com/powsim/powsim/params"

// LatencyModel computes the one-way delay of a message between two
// peers. Every transmission draws fresh queuing and propagation delays;
// nothing is cached per link.
type LatencyModel struct {
	rnd *RandomSource
}

// NewLatencyModel binds the model to the run's random source.
func NewLatencyModel(rnd *RandomSource) *LatencyModel {
	return &LatencyModel{rnd: rnd}
}

// Latency returns the delay in msec for a message of the given size
// (transactions count as size 1, blocks as their transaction count).
// The link runs at 100 Mbps only when both endpoints are fast.
func (m *LatencyModel) Latency(slowFrom, slowTo bool, size int) float64 {
	c := float64(params.FastLinkMbps)
	if slowFrom || slowTo {
		c = float64(params.SlowLinkMbps)
	}
	d := m.rnd.Exp(params.QueueDelayNumerator / c)
	rho := m.rnd.Uniform(params.PropDelayMinMsec, params.PropDelayMaxMsec)
	return rho + float64(size*8)/c + d
}

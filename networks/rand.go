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

// Package networks models everything between two peers: the random
// topology, the per-message latency and the seeded random source the
// whole simulation draws from.
package networks

import "math/rand"

// RandomSource is the single seeded source of randomness of a run.
// Identical seed and identical draw sequence give identical results;
// the source is owned by the Simulation and threaded by pointer.
type RandomSource struct {
	rnd *rand.Rand
}

// NewRandomSource seeds a fresh source.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{rnd: rand.New(rand.NewSource(seed))}
}

// Exp draws from an exponential distribution with the given mean.
func (r *RandomSource) Exp(mean float64) float64 {
	return r.rnd.ExpFloat64() * mean
}

// Uniform draws uniformly from [lo, hi).
func (r *RandomSource) Uniform(lo, hi float64) float64 {
	return lo + r.rnd.Float64()*(hi-lo)
}

// Intn draws uniformly from [0, n).
func (r *RandomSource) Intn(n int) int {
	return r.rnd.Intn(n)
}

// IntRange draws uniformly from [lo, hi).
func (r *RandomSource) IntRange(lo, hi int64) int64 {
	return lo + r.rnd.Int63n(hi-lo)
}

// Shuffle permutes n elements through the swap callback.
func (r *RandomSource) Shuffle(n int, swap func(i, j int)) {
	r.rnd.Shuffle(n, swap)
}

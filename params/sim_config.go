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

import "errors"

// SimConfig carries every knob of a simulation run. It is filled from CLI
// flags and can be dumped/loaded as TOML via the dumpconfig command.
type SimConfig struct {
	// NumPeers is the network size. Peers 0 and 1 are the selfish miners.
	NumPeers int

	// PercentSlow is the percentage of peers on slow links.
	PercentSlow float64

	// MeanTxInterval is the mean transaction inter-arrival time per peer.
	MeanTxInterval float64

	// MeanBlockTime is the mean block-mining interval of the whole network.
	MeanBlockTime float64

	// HashSelfish0 and HashSelfish1 are the selfish miners' hash power
	// fractions. Values below MinHashFraction are clamped up.
	HashSelfish0 float64
	HashSelfish1 float64

	// StopCondition keeps draining the event queue after the block limit
	// is reached, flushing the selfish miners' hidden chains.
	StopCondition bool

	// SaveEvents writes per-peer event logs under the output directory.
	SaveEvents bool

	// Seed feeds the run's random source.
	Seed int64

	// OutputDir is the root of the observation artifacts.
	OutputDir string

	// BlockLimit overrides the accepted-block termination threshold.
	// Zero means DefaultBlockLimit(NumPeers).
	BlockLimit int
}

// DefaultSimConfig mirrors the CLI defaults.
func DefaultSimConfig() *SimConfig {
	return &SimConfig{
		NumPeers:       10,
		PercentSlow:    50,
		MeanTxInterval: 10,
		MeanBlockTime:  100,
		HashSelfish0:   0.3,
		HashSelfish1:   0.3,
		OutputDir:      "observations",
	}
}

// Sanitize clamps the selfish hash fractions and resolves the block limit.
func (c *SimConfig) Sanitize() error {
	if c.NumPeers < 2 {
		return errors.New("at least 2 peers are required")
	}
	if c.HashSelfish0 < MinHashFraction {
		c.HashSelfish0 = MinHashFraction
	}
	if c.HashSelfish1 < MinHashFraction {
		c.HashSelfish1 = MinHashFraction
	}
	if c.HashSelfish0+c.HashSelfish1 >= 1 {
		return errors.New("selfish hash fractions must sum below 1")
	}
	if c.BlockLimit == 0 {
		c.BlockLimit = DefaultBlockLimit(c.NumPeers)
	}
	return nil
}

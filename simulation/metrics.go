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

import "github.com/rcrowley/go-metrics"

var (
	eventsProcessedCounter = metrics.NewRegisteredCounter("sim/events/processed", nil)
	txsGeneratedCounter    = metrics.NewRegisteredCounter("sim/txs/generated", nil)
	txsRelayedCounter      = metrics.NewRegisteredCounter("sim/txs/relayed", nil)
	blocksMinedCounter     = metrics.NewRegisteredCounter("sim/blocks/mined", nil)
	blocksWithheldCounter  = metrics.NewRegisteredCounter("sim/blocks/withheld", nil)
	blocksReleasedCounter  = metrics.NewRegisteredCounter("sim/blocks/released", nil)
	blocksOrphanedCounter  = metrics.NewRegisteredCounter("sim/blocks/orphaned", nil)
	blocksInvalidCounter   = metrics.NewRegisteredCounter("sim/blocks/invalid", nil)
)

// logMetrics dumps the run counters at debug level when the drain ends.
func (s *Simulation) logMetrics() {
	s.logger.Debug("run counters",
		"events", eventsProcessedCounter.Count(),
		"txsGenerated", txsGeneratedCounter.Count(),
		"txsRelayed", txsRelayedCounter.Count(),
		"blocksMined", blocksMinedCounter.Count(),
		"blocksWithheld", blocksWithheldCounter.Count(),
		"blocksReleased", blocksReleasedCounter.Count(),
		"blocksOrphaned", blocksOrphanedCounter.Count(),
		"blocksInvalid", blocksInvalidCounter.Count(),
	)
}

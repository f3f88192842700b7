// Copyright 2024 The powsim Authors
// This file is part of powsim.
//
// powsim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// powsim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with powsim. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/powsim/powsim/params"
)

var (
	// Simulation settings
	NumPeersFlag = cli.IntFlag{
		Name:  "n",
		Usage: "Number of peers in the network",
		Value: 10,
	}
	PercentSlowFlag = cli.Float64Flag{
		Name:  "z0",
		Usage: "Percentage of peers on slow links",
		Value: 50,
	}
	TxIntervalFlag = cli.Float64Flag{
		Name:  "ttx",
		Usage: "Mean transaction inter-arrival time",
		Value: 10,
	}
	BlockTimeFlag = cli.Float64Flag{
		Name:  "I",
		Usage: "Mean block mining time of the whole network",
		Value: 100,
	}
	HashSelfish0Flag = cli.Float64Flag{
		Name:  "h0",
		Usage: "Hash power fraction of selfish miner 0",
		Value: 0.3,
	}
	HashSelfish1Flag = cli.Float64Flag{
		Name:  "h1",
		Usage: "Hash power fraction of selfish miner 1",
		Value: 0.3,
	}
	StopConditionFlag = cli.BoolFlag{
		Name:  "stop",
		Usage: "Keep draining events after the block limit, flushing hidden selfish blocks",
	}
	SaveEventsFlag = cli.BoolFlag{
		Name:  "s",
		Usage: "Write per-peer event logs",
	}
	SeedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "Random source seed",
		Value: 0,
	}
	OutputDirFlag = cli.StringFlag{
		Name:  "outdir",
		Usage: "Directory for the observation artifacts",
		Value: "observations",
	}

	// Logging settings
	VerbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4+=debug",
		Value: 3,
	}
)

// SimFlags is the flag set of the run action and the dumpconfig command.
var SimFlags = []cli.Flag{
	NumPeersFlag,
	PercentSlowFlag,
	TxIntervalFlag,
	BlockTimeFlag,
	HashSelfish0Flag,
	HashSelfish1Flag,
	StopConditionFlag,
	SaveEventsFlag,
	SeedFlag,
	OutputDirFlag,
	VerbosityFlag,
}

// SetSimConfig applies the command line to a config.
func SetSimConfig(ctx *cli.Context, cfg *params.SimConfig) {
	cfg.NumPeers = ctx.GlobalInt(NumPeersFlag.Name)
	cfg.PercentSlow = ctx.GlobalFloat64(PercentSlowFlag.Name)
	cfg.MeanTxInterval = ctx.GlobalFloat64(TxIntervalFlag.Name)
	cfg.MeanBlockTime = ctx.GlobalFloat64(BlockTimeFlag.Name)
	cfg.HashSelfish0 = ctx.GlobalFloat64(HashSelfish0Flag.Name)
	cfg.HashSelfish1 = ctx.GlobalFloat64(HashSelfish1Flag.Name)
	cfg.StopCondition = ctx.GlobalBool(StopConditionFlag.Name)
	cfg.SaveEvents = ctx.GlobalBool(SaveEventsFlag.Name)
	cfg.Seed = ctx.GlobalInt64(SeedFlag.Name)
	cfg.OutputDir = ctx.GlobalString(OutputDirFlag.Name)
}

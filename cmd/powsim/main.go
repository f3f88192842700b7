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

// powsim is a discrete-event simulator of a proof-of-work cryptocurrency
// network with two selfish miners.
package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v1"

	"github.com/powsim/powsim/cmd/utils"
	"github.com/powsim/powsim/log"
	"github.com/powsim/powsim/report"
	"github.com/powsim/powsim/simulation"
)

var (
	logger = log.NewModuleLogger(log.CMDPowsim)

	app = utils.NewApp("The proof-of-work network simulator command line interface")
)

func init() {
	app.Action = runSim
	app.Flags = append(utils.SimFlags, configFileFlag)
	app.Commands = []cli.Command{
		dumpConfigCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSim(ctx *cli.Context) error {
	log.ChangeGlobalLogLevel(ctx.GlobalInt(utils.VerbosityFlag.Name))
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}

	sim, err := simulation.New(cfg)
	if err != nil {
		return err
	}
	if err := report.PrepareDirs(cfg.OutputDir); err != nil {
		return err
	}
	journal := report.NewJournal(cfg.OutputDir)
	defer journal.Close()
	sim.SetJournal(journal)

	logger.Info("simulating the cryptocurrency network",
		"n", cfg.NumPeers, "z0", cfg.PercentSlow, "ttx", cfg.MeanTxInterval,
		"I", cfg.MeanBlockTime, "h0", cfg.HashSelfish0, "h1", cfg.HashSelfish1,
		"stop", cfg.StopCondition)
	sim.Run()

	if err := report.WriteResults(sim, cfg.OutputDir); err != nil {
		return err
	}
	if err := report.WriteBlockTrees(sim, cfg.OutputDir); err != nil {
		return err
	}
	if err := report.WriteNetworkGraph(sim, cfg.OutputDir); err != nil {
		return err
	}
	report.PrintMetrics(os.Stdout, report.ComputeMetrics(sim))
	return nil
}

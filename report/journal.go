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

// Package report writes the observation artifacts of a run: per-peer
// results, arrival-time CSVs, block-tree DOT dumps and the optional
// transaction/event logs.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/powsim/powsim/blockchain"
	"github.com/powsim/powsim/log"
	"github.com/powsim/powsim/simulation"
)

var logger = log.NewModuleLogger(log.Report)

// Journal streams per-peer transaction and event lines to files under
// the output directory. It implements simulation.Journal. Files are
// opened lazily and kept open until Close.
type Journal struct {
	dir   string
	files map[string]*os.File
}

// NewJournal binds a journal to the run's output directory. PrepareDirs
// must have run first.
func NewJournal(dir string) *Journal {
	return &Journal{dir: dir, files: make(map[string]*os.File)}
}

func (j *Journal) file(relpath string) (*os.File, error) {
	if f, ok := j.files[relpath]; ok {
		return f, nil
	}
	f, err := os.OpenFile(filepath.Join(j.dir, relpath), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "journal open")
	}
	j.files[relpath] = f
	return f, nil
}

func (j *Journal) appendLine(relpath, line string) {
	f, err := j.file(relpath)
	if err != nil {
		logger.Error("journal write failed", "file", relpath, "err", err)
		return
	}
	if _, err := f.WriteString(line); err != nil {
		logger.Error("journal write failed", "file", relpath, "err", err)
	}
}

// Transaction records a freshly created transfer in the creator's log
// and the global log.
func (j *Journal) Transaction(creator blockchain.PeerID, tx *blockchain.Transaction) {
	line := fmt.Sprintf("%d: %d pays %d %d coins \n", tx.ID, tx.From, tx.To, tx.Amount)
	j.appendLine(filepath.Join("Transactions", fmt.Sprintf("peer_%d_Transactions.txt", creator)), line)
	j.appendLine(filepath.Join("Transactions", "All_Transactions.txt"), line)
}

// Event records a dispatched event in the acting peer's log.
func (j *Journal) Event(ev *simulation.Event) {
	switch ev.Kind {
	case simulation.TxGen:
		j.appendLine(peerEventFile(ev.Sender),
			fmt.Sprintf("%v %s sender = %d  \n", ev.Time, ev.Kind, ev.Sender))
	case simulation.TxRec:
		j.appendLine(peerEventFile(ev.Receiver),
			fmt.Sprintf("%v %s %d %d %d Transaction from %d to %d \n",
				ev.Time, ev.Kind, ev.Receiver, ev.Txn.ID, ev.Txn.Amount, ev.Txn.From, ev.Txn.To))
	case simulation.BlockGen:
		j.appendLine(peerEventFile(ev.Generator),
			fmt.Sprintf("%v %s %d \n", ev.Time, ev.Kind, ev.Generator))
	case simulation.BlockRec:
		j.appendLine(peerEventFile(ev.Receiver),
			fmt.Sprintf("%v %s %d %d \n", ev.Time, ev.Kind, ev.Receiver, ev.Block.ID))
	}
}

func peerEventFile(id blockchain.PeerID) string {
	return filepath.Join("Events", fmt.Sprintf("peer_%d.txt", id))
}

// Close flushes and closes every open log file.
func (j *Journal) Close() error {
	var firstErr error
	for name, f := range j.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "closing %s", name)
		}
	}
	j.files = make(map[string]*os.File)
	return firstErr
}

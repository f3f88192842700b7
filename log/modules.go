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

package log

// ModuleID identifies the subsystem a logger belongs to. Every package
// creates its own logger with NewModuleLogger at init time.
type ModuleID int

const (
	BaseLogger ModuleID = iota
	CMDPowsim
	CMDUtils
	Common
	Blockchain
	Networks
	Simulation
	Report
	ModuleNameLen
)

func (m ModuleID) String() string {
	switch m {
	case BaseLogger:
		return "base"
	case CMDPowsim:
		return "cmd/powsim"
	case CMDUtils:
		return "cmd/utils"
	case Common:
		return "common"
	case Blockchain:
		return "blockchain"
	case Networks:
		return "networks"
	case Simulation:
		return "simulation"
	case Report:
		return "report"
	}
	return "unknown"
}

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

package blockchain

import "errors"

var (
	// ErrKnownBlock: the block is already accepted or parked as an orphan.
	ErrKnownBlock = errors.New("block already known")

	// ErrKnownTransaction: the transaction is already pending or pushed.
	ErrKnownTransaction = errors.New("transaction already known")

	// ErrOrphanBlock: the block's parent is not accepted locally.
	ErrOrphanBlock = errors.New("block parent unknown")

	// ErrInvalidBlock: replaying the block's transactions on its parent
	// does not reproduce its balance vector.
	ErrInvalidBlock = errors.New("block balance vector mismatch")

	// ErrInsufficientBalance: a transfer would overdraw its sender.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

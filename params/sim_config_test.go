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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeDefaults(t *testing.T) {
	cfg := DefaultSimConfig()
	require.NoError(t, cfg.Sanitize())
	assert.Equal(t, DefaultBlockLimit(cfg.NumPeers), cfg.BlockLimit)
	assert.Equal(t, 0.3, cfg.HashSelfish0)
}

func TestSanitizeClampsHashFractions(t *testing.T) {
	cfg := DefaultSimConfig()
	cfg.HashSelfish0 = 0
	cfg.HashSelfish1 = -1
	require.NoError(t, cfg.Sanitize())
	assert.Equal(t, MinHashFraction, cfg.HashSelfish0)
	assert.Equal(t, MinHashFraction, cfg.HashSelfish1)
}

func TestSanitizeRejectsBadConfigs(t *testing.T) {
	cfg := DefaultSimConfig()
	cfg.NumPeers = 1
	assert.Error(t, cfg.Sanitize())

	cfg = DefaultSimConfig()
	cfg.HashSelfish0 = 0.6
	cfg.HashSelfish1 = 0.5
	assert.Error(t, cfg.Sanitize())
}

func TestSanitizeKeepsExplicitBlockLimit(t *testing.T) {
	cfg := DefaultSimConfig()
	cfg.BlockLimit = 7
	require.NoError(t, cfg.Sanitize())
	assert.Equal(t, 7, cfg.BlockLimit)
}

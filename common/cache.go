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

package common

import (
	"github.com/hashicorp/golang-lru"

	"github.com/powsim/powsim/log"
)

var logger = log.NewModuleLogger(log.Common)

// Cache is the bounded key-value cache handed to ledgers for
// membership bookkeeping that tolerates eviction.
type Cache interface {
	Add(key interface{}, value interface{}) (evicted bool)
	Get(key interface{}) (value interface{}, ok bool)
	Contains(key interface{}) bool
	Len() int
	Purge()
}

type lruCache struct {
	lru *lru.Cache
}

func (c *lruCache) Add(key interface{}, value interface{}) (evicted bool) {
	return c.lru.Add(key, value)
}

func (c *lruCache) Get(key interface{}) (value interface{}, ok bool) {
	return c.lru.Get(key)
}

func (c *lruCache) Contains(key interface{}) bool {
	return c.lru.Contains(key)
}

func (c *lruCache) Len() int {
	return c.lru.Len()
}

func (c *lruCache) Purge() {
	c.lru.Purge()
}

// NewCache returns an LRU cache of the given size.
func NewCache(size int) Cache {
	cache, err := lru.New(size)
	if err != nil {
		logger.Crit("bad cache size", "size", size, "err", err)
	}
	return &lruCache{lru: cache}
}

// Copyright 2026 The ntfs-parse Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lrucache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCache_GetMiss(t *testing.T) {
	c := New[int, string](2)

	_, ok := c.Get(1)

	assert.False(t, ok)
}

func TestCache_PutThenGet(t *testing.T) {
	c := New[int, string](2)

	c.Put(1, "one")
	v, ok := c.Get(1)

	assert.True(t, ok)
	assert.Equal(t, "one", v)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, string](2)

	c.Put(1, "one")
	c.Put(2, "two")
	c.Put(3, "three") // evicts 1, since it has never been touched since insertion

	_, ok := c.Get(1)
	assert.False(t, ok)
	v2, ok := c.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "two", v2)
	v3, ok := c.Get(3)
	assert.True(t, ok)
	assert.Equal(t, "three", v3)
	assert.Equal(t, 2, c.Len())
}

func TestCache_GetRefreshesRecency(t *testing.T) {
	c := New[int, string](2)

	c.Put(1, "one")
	c.Put(2, "two")
	c.Get(1)          // 1 is now most-recently-used
	c.Put(3, "three") // should evict 2, not 1

	_, ok := c.Get(2)
	assert.False(t, ok)
	_, ok = c.Get(1)
	assert.True(t, ok)
}

func TestCache_PutExistingKeyUpdatesValueWithoutGrowing(t *testing.T) {
	c := New[int, string](2)

	c.Put(1, "one")
	c.Put(1, "uno")

	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "uno", v)
	assert.Equal(t, 1, c.Len())
}

func TestCache_ZeroCapacityIsUnbounded(t *testing.T) {
	c := New[int, int](0)

	for i := 0; i < 100; i++ {
		c.Put(i, i*i)
	}

	assert.Equal(t, 100, c.Len())
	v, ok := c.Get(0)
	assert.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestCache_Remove(t *testing.T) {
	c := New[int, string](2)
	c.Put(1, "one")

	c.Remove(1)

	_, ok := c.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

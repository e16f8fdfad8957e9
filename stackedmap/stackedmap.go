// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap

import "iter"

// Getter loads a key missing from every level, typically from the committed store.
type Getter[K comparable, V any] func(key K) (value V, exist bool, err error)

// StackedMap is a write journal organized in levels. Reads fall through the levels
// top down, then to the source. Popping a level discards every write made since its Push.
type StackedMap[K comparable, V any] struct {
	src    Getter[K, V]
	levels []*level[K, V]
}

type level[K comparable, V any] struct {
	kvs     map[K]V
	journal []entry[K, V]
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates a StackedMap over src with one level pushed.
func New[K comparable, V any](src Getter[K, V]) *StackedMap[K, V] {
	sm := &StackedMap[K, V]{src: src}
	sm.Push()
	return sm
}

// Depth returns the number of levels.
func (sm *StackedMap[K, V]) Depth() int {
	return len(sm.levels)
}

// Push opens a level and returns the depth before it, to be passed to PopTo.
func (sm *StackedMap[K, V]) Push() int {
	sm.levels = append(sm.levels, &level[K, V]{kvs: make(map[K]V)})
	return len(sm.levels) - 1
}

// Pop discards the top level.
func (sm *StackedMap[K, V]) Pop() {
	sm.levels[len(sm.levels)-1] = nil
	sm.levels = sm.levels[:len(sm.levels)-1]
}

// PopTo pops levels until depth remain.
func (sm *StackedMap[K, V]) PopTo(depth int) {
	for len(sm.levels) > depth {
		sm.Pop()
	}
}

// Get returns the latest value written for key, or the source value.
func (sm *StackedMap[K, V]) Get(key K) (V, bool, error) {
	for i := len(sm.levels) - 1; i >= 0; i-- {
		if v, ok := sm.levels[i].kvs[key]; ok {
			return v, true, nil
		}
	}
	return sm.src(key)
}

// Put writes into the top level. It panics when no level is pushed.
func (sm *StackedMap[K, V]) Put(key K, value V) {
	top := sm.levels[len(sm.levels)-1]
	top.kvs[key] = value
	top.journal = append(top.journal, entry[K, V]{key, value})
}

// Journal yields every write still on the stack, oldest first.
func (sm *StackedMap[K, V]) Journal() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, lvl := range sm.levels {
			for _, e := range lvl.journal {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}

/*
 * Lumen - The protocol-oriented programming language
 *
 * Copyright Lumen Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package orderedmap

// OrderedMap is a map which preserves the order in which keys were first set.
// Iteration order is the insertion order, which is an externally observable
// invariant for e.g. the fields of a synthesized structure.
//
// The zero value is ready to use.
type OrderedMap[K comparable, V any] struct {
	pairs map[K]*Pair[K, V]
	keys  []K
}

// Pair is an entry of an OrderedMap
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// New returns a new OrderedMap with the given initial capacity
func New[K comparable, V any](size int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		pairs: make(map[K]*Pair[K, V], size),
		keys:  make([]K, 0, size),
	}
}

func (om *OrderedMap[K, V]) ensureInitialized() {
	if om.pairs != nil {
		return
	}
	om.pairs = make(map[K]*Pair[K, V])
}

// Get returns the value associated with the given key.
// The second return value indicates if the key is present in the map.
func (om *OrderedMap[K, V]) Get(key K) (result V, present bool) {
	if om.pairs == nil {
		return
	}

	var pair *Pair[K, V]
	if pair, present = om.pairs[key]; present {
		return pair.Value, present
	}
	return
}

// Contains returns true if the key is present in the map,
// and false otherwise.
func (om *OrderedMap[K, V]) Contains(key K) (present bool) {
	if om.pairs == nil {
		return false
	}
	_, present = om.pairs[key]
	return
}

// Set sets the value for the given key.
// If the key was already set, its position in the iteration order is kept.
// Returns the previous value, if any.
func (om *OrderedMap[K, V]) Set(key K, value V) (oldValue V, updated bool) {
	om.ensureInitialized()

	if pair, present := om.pairs[key]; present {
		oldValue = pair.Value
		pair.Value = value
		return oldValue, true
	}

	om.pairs[key] = &Pair[K, V]{
		Key:   key,
		Value: value,
	}
	om.keys = append(om.keys, key)
	return
}

// Delete removes the entry with the given key.
// Returns the deleted value, if the key was present.
func (om *OrderedMap[K, V]) Delete(key K) (oldValue V, present bool) {
	if om.pairs == nil {
		return
	}

	var pair *Pair[K, V]
	pair, present = om.pairs[key]
	if !present {
		return
	}

	oldValue = pair.Value
	delete(om.pairs, key)

	for i, existingKey := range om.keys {
		if existingKey == key {
			om.keys = append(om.keys[:i], om.keys[i+1:]...)
			break
		}
	}

	return
}

// Len returns the length of the map, i.e. the number of entries
func (om *OrderedMap[K, V]) Len() int {
	return len(om.keys)
}

// Foreach iterates over the entries of the map in insertion order,
// and invokes the given function for each key-value pair
func (om *OrderedMap[K, V]) Foreach(f func(key K, value V)) {
	for _, key := range om.keys {
		f(key, om.pairs[key].Value)
	}
}

// ForeachWithError iterates over the entries of the map in insertion order,
// and invokes the given function for each key-value pair.
// If the function returns an error, iteration stops and the error is returned.
func (om *OrderedMap[K, V]) ForeachWithError(f func(key K, value V) error) error {
	for _, key := range om.keys {
		err := f(key, om.pairs[key].Value)
		if err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the keys of the map, in insertion order
func (om *OrderedMap[K, V]) Keys() []K {
	return om.keys
}

// Package topological orders values so that every value comes after the
// values it depends on.
package topological

import (
	"fmt"
	"maps"
	"slices"

	"golang.org/x/exp/constraints"
)

var ErrCycleDetected = fmt.Errorf("cycle detected")

// CycleError names the keys left unordered when a cycle is found.
type CycleError[K constraints.Ordered] struct {
	Keys []K
}

func (e CycleError[K]) Error() string {
	return fmt.Sprintf("%v: %v", ErrCycleDetected, e.Keys)
}

func (e CycleError[K]) Unwrap() error {
	return ErrCycleDetected
}

func sortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)
	return keys
}

func Sort[T constraints.Ordered](values []T, depFunc func(T) []T) ([]T, error) {
	return SortFunc(values, func(val T) T { return val }, depFunc)
}

// SortFunc is Sort for values keyed by keyFunc. Dependencies that are not in
// values are ignored. Among values that are ready at the same time, the one
// with the lowest key comes first.
func SortFunc[T any, K constraints.Ordered](values []T, keyFunc func(T) K, depFunc func(T) []T) ([]T, error) {
	valuesByKey := make(map[K]T, len(values))
	for _, val := range values {
		valuesByKey[keyFunc(val)] = val
	}

	pending := make(map[K]int, len(valuesByKey))
	dependents := make(map[K][]K)

	for _, key := range sortedKeys(valuesByKey) {
		pending[key] = 0
		for _, dep := range depFunc(valuesByKey[key]) {
			depKey := keyFunc(dep)
			if _, ok := valuesByKey[depKey]; !ok {
				continue
			}
			if slices.Contains(dependents[depKey], key) {
				continue
			}

			dependents[depKey] = append(dependents[depKey], key)
			pending[key]++
		}
	}

	var ready []K
	for _, key := range sortedKeys(pending) {
		if pending[key] == 0 {
			ready = append(ready, key)
		}
	}

	list := make([]T, 0, len(valuesByKey))
	for len(ready) > 0 {
		var key K
		key, ready = ready[0], ready[1:]
		delete(pending, key)
		list = append(list, valuesByKey[key])

		for _, dep := range dependents[key] {
			pending[dep]--
			if pending[dep] == 0 {
				ready = append(ready, dep)
			}
		}
		slices.Sort(ready)
	}

	if len(pending) > 0 {
		return nil, CycleError[K]{Keys: sortedKeys(pending)}
	}

	return list, nil
}

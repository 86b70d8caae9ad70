package util

import (
	"cmp"
	"sort"
)

//*******************************************
// list
//*******************************************

type List[T any] []T

func NewList[T any](capacity int) List[T] {
	return make([]T, 0, capacity)
}

func (self *List[T]) Add(value T) {
	*self = append(*self, value)
}
func (self List[T]) Get(index int) T {
	return self[index]
}
func (self List[T]) Set(index int, value T) {
	self[index] = value
}
func (self List[T]) Length() int {
	return len(self)
}

//*******************************************
// dict
//*******************************************

type Dict[K comparable, V any] map[K]V

func NewDict[K comparable, V any](capacity int) Dict[K, V] {
	return make(map[K]V, capacity)
}

func (self Dict[K, V]) Get(key K) V {
	return self[key]
}
func (self Dict[K, V]) Set(key K, value V) {
	self[key] = value
}
func (self Dict[K, V]) ContainsKey(key K) bool {
	_, ok := self[key]
	return ok
}
func (self Dict[K, V]) Delete(key K) {
	delete(self, key)
}

// Returns the keys in ascending order.
func SortedKeys[K cmp.Ordered, V any](dict Dict[K, V]) List[K] {
	keys := NewList[K](len(dict))
	for k := range dict {
		keys.Add(k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

//*******************************************
// optional
//*******************************************

type Optional[T any] struct {
	Value T
	ok    bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, ok: true}
}
func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (self Optional[T]) HasValue() bool {
	return self.ok
}

//*******************************************
// tuples
//*******************************************

type Tuple[A any, B any] struct {
	A A
	B B
}

func MakeTuple[A any, B any](a A, b B) Tuple[A, B] {
	return Tuple[A, B]{A: a, B: b}
}

type Triple[A any, B any, C any] struct {
	A A
	B B
	C C
}

func MakeTriple[A any, B any, C any](a A, b B, c C) Triple[A, B, C] {
	return Triple[A, B, C]{A: a, B: b, C: c}
}

// Returns the most frequent value, ties are resolved towards the value seen first.
func GetMostCommon[T comparable](values []T) T {
	counts := NewDict[T, int](10)
	var best T
	best_count := 0
	for _, v := range values {
		c := counts[v] + 1
		counts[v] = c
		if c > best_count {
			best = v
			best_count = c
		}
	}
	return best
}

func SortInt32(values []int32) {
	sort.Slice(values, func(i, j int) bool {
		return values[i] < values[j]
	})
}

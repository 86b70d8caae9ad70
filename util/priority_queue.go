package util

import (
	"cmp"
	"container/heap"
)

//*******************************************
// priority queue
//*******************************************

type _PQEntry[T any, P cmp.Ordered] struct {
	item T
	prio P
}

type _PQHeap[T any, P cmp.Ordered] []_PQEntry[T, P]

func (self _PQHeap[T, P]) Len() int           { return len(self) }
func (self _PQHeap[T, P]) Less(i, j int) bool { return self[i].prio < self[j].prio }
func (self _PQHeap[T, P]) Swap(i, j int)      { self[i], self[j] = self[j], self[i] }
func (self *_PQHeap[T, P]) Push(x any) {
	*self = append(*self, x.(_PQEntry[T, P]))
}
func (self *_PQHeap[T, P]) Pop() any {
	old := *self
	n := len(old)
	entry := old[n-1]
	*self = old[:n-1]
	return entry
}

// Min-priority queue.
type PriorityQueue[T any, P cmp.Ordered] struct {
	entries *_PQHeap[T, P]
}

func NewPriorityQueue[T any, P cmp.Ordered](capacity int) PriorityQueue[T, P] {
	entries := make(_PQHeap[T, P], 0, capacity)
	return PriorityQueue[T, P]{entries: &entries}
}

func (self PriorityQueue[T, P]) Enqueue(item T, prio P) {
	heap.Push(self.entries, _PQEntry[T, P]{item, prio})
}

func (self PriorityQueue[T, P]) Dequeue() (T, bool) {
	if self.entries.Len() == 0 {
		var t T
		return t, false
	}
	entry := heap.Pop(self.entries).(_PQEntry[T, P])
	return entry.item, true
}

func (self PriorityQueue[T, P]) Length() int {
	return self.entries.Len()
}

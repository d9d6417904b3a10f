package routing

import "container/heap"

// pqEntry is one frontier entry. Duplicate entries per node stand in for
// decrease-key; stale ones are skipped at extraction. tieBreak orders equal
// priorities (A* uses the g-value there), with the node ID as the final key
// so extraction order is fully deterministic.
type pqEntry struct {
	node     int64
	priority float64
	tieBreak float64
}

type entryHeap []pqEntry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	if h[i].tieBreak != h[j].tieBreak {
		return h[i].tieBreak < h[j].tieBreak
	}
	return h[i].node < h[j].node
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(pqEntry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// minQueue is a small typed wrapper over container/heap.
type minQueue struct {
	entries entryHeap
}

func newMinQueue() *minQueue {
	return &minQueue{entries: make(entryHeap, 0, 64)}
}

func (q *minQueue) push(e pqEntry) {
	heap.Push(&q.entries, e)
}

func (q *minQueue) pop() (pqEntry, bool) {
	if len(q.entries) == 0 {
		return pqEntry{}, false
	}
	return heap.Pop(&q.entries).(pqEntry), true
}

// peekPriority returns the smallest unextracted priority without removing
// it. The second return is false on an empty queue.
func (q *minQueue) peekPriority() (float64, bool) {
	if len(q.entries) == 0 {
		return 0, false
	}
	return q.entries[0].priority, true
}

func (q *minQueue) empty() bool {
	return len(q.entries) == 0
}

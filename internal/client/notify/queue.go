package notify

import (
	"container/heap"
	"time"
)

// alert is one pending local notification.
type alert struct {
	id   string
	text string
	at   time.Time

	index int // maintained by heap.Interface
}

// alertQueue is a min-heap of pending alerts ordered by trigger time, with
// an id index for O(1) lookup on cancel.
type alertQueue struct {
	items []*alert
	byID  map[string]*alert
}

func newAlertQueue() *alertQueue {
	q := &alertQueue{byID: make(map[string]*alert)}
	heap.Init(q)
	return q
}

func (q *alertQueue) Len() int { return len(q.items) }

func (q *alertQueue) Less(i, j int) bool {
	return q.items[i].at.Before(q.items[j].at)
}

func (q *alertQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}

func (q *alertQueue) Push(x any) {
	a, ok := x.(*alert)
	if !ok {
		return
	}
	a.index = len(q.items)
	q.items = append(q.items, a)
	q.byID[a.id] = a
}

func (q *alertQueue) Pop() any {
	n := len(q.items)
	if n == 0 {
		return nil
	}
	a := q.items[n-1]
	q.items[n-1] = nil
	q.items = q.items[:n-1]
	delete(q.byID, a.id)
	return a
}

// Peek returns the earliest pending alert without removing it.
func (q *alertQueue) Peek() *alert {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// Remove drops the alert with the given id. Unknown ids are a no-op.
func (q *alertQueue) Remove(id string) bool {
	a, ok := q.byID[id]
	if !ok {
		return false
	}
	heap.Remove(q, a.index)
	return true
}

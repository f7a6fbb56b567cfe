package platform

// EventQueue is a FIFO of translated events owned by one adapter. It never
// reorders or coalesces.
type EventQueue struct {
	events []Event
	head   int
}

// Push appends ev to the back of the queue.
func (q *EventQueue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events) - q.head
}

// Pop removes and returns the oldest event, or NoEvent when empty.
func (q *EventQueue) Pop() Event {
	if q.head >= len(q.events) {
		return NoEvent{}
	}
	ev := q.events[q.head]
	q.events[q.head] = nil
	q.head++
	if q.head == len(q.events) {
		q.events = q.events[:0]
		q.head = 0
	} else if q.head > 64 && q.head*2 >= len(q.events) {
		n := copy(q.events, q.events[q.head:])
		clear(q.events[n:])
		q.events = q.events[:n]
		q.head = 0
	}
	return ev
}

// Clear drops every queued event.
func (q *EventQueue) Clear() {
	clear(q.events)
	q.events = q.events[:0]
	q.head = 0
}

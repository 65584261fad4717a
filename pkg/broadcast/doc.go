// Package broadcast delivers values to in-process listeners.
//
// Listeners is a callback registry with a serial delivery queue. Producers
// enqueue values while holding their own lock, which fixes the delivery
// order, then call Drain after releasing it. Only one goroutine drains at a
// time, so callbacks never overlap and always observe values in the order
// they were queued. Callbacks may call back into the producer.
//
//	var subs broadcast.Listeners[State]
//	remove := subs.Add(func(s State) { render(s) })
//	defer remove()
//
//	mu.Lock()
//	state = next
//	subs.Enqueue(state)
//	mu.Unlock()
//	subs.Drain()
package broadcast

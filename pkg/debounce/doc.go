// Package debounce implements cancel-and-reschedule debouncing with an
// injectable clock.
//
// A Debouncer holds at most one pending call. Each Schedule stops the previous
// timer and hands out a fresh Token; the token lets the callback's owner
// discard a result that was overtaken by newer input:
//
//	d := debounce.New(300 * time.Millisecond)
//	d.Schedule(func(tok debounce.Token) {
//	    mu.Lock()
//	    defer mu.Unlock()
//	    if !d.Valid(tok) {
//	        return
//	    }
//	    // apply result
//	})
//
// Tests use ManualClock to fire timers deterministically:
//
//	clock := debounce.NewManualClock(time.Now())
//	d := debounce.New(300*time.Millisecond, debounce.WithClock(clock))
//	d.Schedule(fn)
//	clock.Advance(300 * time.Millisecond) // fn runs here, on this goroutine
package debounce

// Package async runs a call in the background and hands back a Future for
// its result.
//
// The form uses it to submit credentials without blocking input handling:
//
//	fut := async.Async(ctx, values, submit)
//	fut.Then(func(u *auth.User, err error) {
//		// deliver the outcome as a state change
//	})
//
// Callers that need the value can Await it, bound the wait with
// AwaitContext or AwaitWithTimeout, or poll IsComplete. Callbacks registered
// with Then run before Await returns.
package async

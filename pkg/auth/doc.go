// Package auth defines the authentication collaborator used by the sign-in
// and sign-up forms, together with its error taxonomy and session feed.
//
// Every Client method reports failures as *Error. Callers branch on the Kind
// with errors.Is against the package sentinels:
//
//	user, err := client.SignIn(ctx, email, password)
//	switch {
//	case errors.Is(err, auth.ErrWrongPassword):
//		// ask again
//	case errors.Is(err, auth.ErrNetwork):
//		// offer retry
//	}
//
// Session transitions are pushed through a SessionFeed. A subscriber first
// receives the current state, then each sign-in and sign-out. Observer keeps
// the latest state for polling callers.
//
// MemoryClient is an in-process backend that hashes passwords with bcrypt and
// issues password reset tokens as HS256 JWTs. The firebase subpackage talks to
// the hosted identity service.
package auth

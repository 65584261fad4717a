// Package form combines the email, password and name field controllers into
// a sign-in or sign-up form.
//
// The form is submittable when every field required by its mode is Valid and
// no request is in flight. Submit sends the validated values to an
// auth.Client in the background and reports the outcome through OnChange.
// Entered text is never cleared, neither by a failed submit nor by switching
// modes.
//
//	f := form.New(client)
//	defer f.Close()
//
//	f.Email().TextChanged("user@example.com")
//	f.Password().TextChanged("Passw0rd!")
//	f.Flush()
//
//	if fut, ok := f.Submit(ctx); ok {
//		user, err := fut.Await()
//		...
//	}
package form

// Package field provides debounced input controllers for form fields.
//
// A Controller moves through four statuses:
//
//	Idle     the field is empty, no error is shown
//	Pending  the user is typing; validation waits for a quiet period
//	Valid    the text passed validation and Value holds the typed result
//	Invalid  the text failed; Message holds the text to display
//
// Each keystroke is reported with TextChanged. Validation runs once the input
// has been quiet for the debounce delay (300ms by default). Typing again
// cancels the scheduled validation, so only the last text of a burst is
// validated. Returning to the last validated text restores its outcome
// without validating again.
//
// Typed constructors wire the validator and message catalog for each field:
//
//	email := field.NewEmailField()
//	defer email.Close()
//	email.OnChange(func(s field.State[credentials.EmailAddress]) {
//		render(s.Raw, s.Message)
//	})
//	email.TextChanged("jane@example.com")
//
// Tests drive time with debounce.ManualClock through WithClock.
package field

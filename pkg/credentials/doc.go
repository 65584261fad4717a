// Package credentials provides construct-or-fail value types for sign-in input.
//
// An EmailAddress, Password, Name or MobileNumber can only be obtained through
// its New* constructor, which runs the matching rule from the validator
// package. A non-zero value therefore always satisfies its rule, and since the
// wrapped string is unexported the value cannot be mutated afterwards. Zero
// values report IsZero and are what the constructors return alongside an error.
//
//	email, err := credentials.NewEmailAddress(" user@example.com ")
//	if errors.Is(err, validator.ErrEmailInvalidFormat) {
//		// show "Invalid email address"
//	}
//	fmt.Println(email) // user@example.com
//
// Password hides its content from fmt and log/slog; call Reveal when passing it
// to an authentication backend.
package credentials

// Package validator implements the sign-in field rules: email, name, password
// and mobile number.
//
// Every check is a small Rule value pairing a boolean Check with a
// translation-friendly ValidationError. Apply evaluates all rules it is given
// and aggregates the failures into ValidationErrors, which is how password
// policies report every unmet requirement at once instead of the first one.
//
// # Field validators
//
//	email, err := validator.ValidateEmail("  user@example.com ")
//	// email == "user@example.com"
//
//	_, err = validator.ValidateName("Bo")
//	var nerr *validator.NameError
//	errors.As(err, &nerr) // nerr.Kind == validator.NameTooShort, nerr.Limit == 3
//
//	_, err = validator.ValidatePassword("pass1", validator.DefaultPasswordPolicy())
//	var perr *validator.PasswordError
//	errors.As(err, &perr) // perr.Failures lists MinLength(8), MinUppercase(1), ...
//
//	e164, err := validator.ValidateMobileNumber("+44 20 7031 3000")
//
// The functions are pure and hold no state, so they are safe for concurrent
// use. Use errors.Is with the Err* sentinels to branch on a failure kind.
package validator

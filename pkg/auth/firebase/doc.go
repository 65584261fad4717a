// Package firebase implements auth.Client on top of the Firebase
// Authentication (Identity Toolkit v1) REST API.
//
// Backend error codes are mapped to the auth error taxonomy by MapError;
// transport failures are reported as auth.ErrNetwork.
//
//	c, err := firebase.NewClient(firebase.Config{APIKey: key})
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//	user, err := c.SignIn(ctx, email, password)
//
// Set Config.EmulatorHost to talk to a local Auth emulator.
package firebase

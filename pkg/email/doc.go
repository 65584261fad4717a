// Package email delivers transactional mail such as password reset links.
//
// Sender is implemented by PostmarkSender for real delivery and by DevSender,
// which writes every message to a directory as an HTML file plus a JSON
// metadata file. Templates are templ components rendered with Render.
//
//	sender, err := email.NewPostmarkSender(cfg)
//	if err != nil {
//		return err
//	}
//	send := email.PasswordResetSender(sender, "https://shop.example.com/reset")
//	client := auth.NewMemoryClient(secret, auth.WithResetSender(send))
package email

// Package email defines the EmailSender capability used by the relay and
// the parameters of a single outbound message.
//
// Providers live elsewhere (see integration/email/smtp). DevSender is the
// local development implementation: it writes each message to a directory
// as .html, .txt and .json files instead of delivering it.
//
//	sender := email.NewDevSender("./tmp/emails")
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "user@example.com",
//		Subject:  "Welcome",
//		BodyHTML: "<h1>Welcome!</h1>",
//		BodyText: "Welcome!",
//	})
//
// Errors wrap ErrInvalidParams, ErrInvalidConfig or ErrFailedToSendEmail so
// callers can branch with errors.Is.
package email

// Package smtp provides an SMTP implementation of email.EmailSender built on
// gopkg.in/mail.v2.
//
// Every message is sent over a fresh connection that must upgrade with
// STARTTLS; servers that do not offer it are rejected. Credentials are sent
// with whatever AUTH mechanism the server advertises. The dial and the
// session are bounded by Config.Timeout (10 seconds by default) and a failed
// send is never retried.
//
//	sender, err := smtp.New(smtp.Config{
//		Host:        "smtp.example.com",
//		Port:        587,
//		Username:    "relay@example.com",
//		Password:    "secret",
//		SenderEmail: "noreply@example.com",
//		SenderName:  "Example",
//	})
//	if err != nil {
//		// errors.Is(err, email.ErrInvalidConfig)
//	}
//
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:     "user@example.com",
//		SendToName: "User",
//		Subject:    "Hello",
//		BodyHTML:   "<p>Hello</p>",
//		BodyText:   "Hello",
//	})
//	// errors.Is(err, email.ErrFailedToSendEmail) for transport, auth and protocol failures
//
// Messages are UTF-8, quoted-printable, with a Message-ID derived from a
// random UUID and the sender's domain.
package smtp

// Package relay accepts a JSON send request over HTTP and delivers it as one
// email through an authenticated SMTP connection.
//
// Every request is answered with {"success": bool, "message": string}. The
// checks run in a fixed order and the first failure ends the request:
//
//	settings file present      500 ".env file not found"
//	required settings set      500 "Missing env key: MAIL_HOST"
//	method is POST             405 "Method not allowed"
//	body is a JSON object      400 "Invalid JSON body"
//	required fields non-empty  422 "Missing field: toEmail"
//	message dispatched         200 "Email sent" / 500 "Email sending failed"
//
// Settings come from an env style file read by Settings. A successful load is
// reused for the life of the process.
//
//	settings := relay.NewSettings(".env")
//	rl := relay.New(settings, relay.WithLogger(log))
//	r := router.New[*router.Context](router.WithErrorHandler(relay.ErrorHandler[*router.Context](log)))
//	r.Handle("/", relay.Handler[*router.Context](rl))
//
// Dispatch errors are logged through the configured logger; the caller only
// sees "Email sending failed".
package relay

// Package mailrelay assembles the mail relay service: process configuration,
// logger, router with request ID and logging middleware, health checks, the
// relay endpoint and the HTTP server.
//
//	app, err := mailrelay.NewApp()
//	if err != nil {
//		return err
//	}
//	eg, ctx := errgroup.WithContext(ctx)
//	eg.Go(app.Run(ctx))
//	return eg.Wait()
//
// Routes:
//
//	GET  /health/live   ALIVE
//	GET  /health/ready  READY once the mail settings file loads, 503 otherwise
//	*    RELAY_PATH     the relay (default "/")
//
// MAIL_DRIVER=dev replaces SMTP delivery with files written to MAIL_DEV_DIR.
package mailrelay

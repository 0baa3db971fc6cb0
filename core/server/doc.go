// Package server wraps http.Server with graceful shutdown and production
// defaults for timeouts and header limits.
//
// # Basic Usage
//
//	srv := server.New(":8080",
//		server.WithLogger(log),
//		server.WithShutdownTimeout(10*time.Second),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	eg, ctx := errgroup.WithContext(ctx)
//	eg.Go(srv.Run(ctx, handler))
//	if err := eg.Wait(); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// The function returned by Run blocks until ctx is canceled, then drains
// in-flight requests for up to the shutdown timeout.
//
// # Configuration
//
// Config carries env tags (SERVER_ADDR, SERVER_READ_TIMEOUT, ...) and is
// loaded with config.Load. NewFromConfig turns it into a Server; explicit
// options passed to it win over config values. TLS is enabled when both
// SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE are set.
package server

// Package logger builds log/slog loggers and provides attribute helpers so
// log lines across the service use the same keys.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "mailrelay"),
//		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//	)
//
//	log.Error("mail dispatch failed",
//		logger.Component("relay"),
//		logger.Error(err),
//	)
//
// Development uses text output at debug level; staging and production use
// JSON at info level. Context extractors add request-scoped attributes such
// as the request ID to every *Context logging call.
package logger

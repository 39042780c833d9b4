// Package logger provides structured logging for hostkit on top of zerolog.
//
// A process-wide logger is initialized once from Config (usually embedded in
// config.ServiceConfig) and component loggers are derived from it:
//
//	logger.Init(cfg.Logging)
//	log := logger.WithComponent("startup")
//	log.Info("Startup action completed", logger.DurationFields("warmup", d))
//
// Multi-line messages such as the route report are emitted as a single
// record so log shippers keep them together.
package logger

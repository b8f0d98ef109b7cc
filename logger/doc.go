// Package logger provides structured logging using zerolog.
//
// Clients log through a *Logger supplied with client.WithLogger; without one
// they use Nop and stay silent.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg.Logging, "billing").WithComponent("ledger-client")
//	log.Debug("call finished", logger.Fields(logger.FieldEndpoint, "GET /accounts/:id"))
package logger

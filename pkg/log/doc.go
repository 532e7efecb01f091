// Package log provides the logging abstraction shared by logbridge components.
//
// Components accept a Logger and never talk to a logging library directly.
// A zerolog-backed implementation is used by the CLI and a no-op
// implementation is used by tests and by embedders that do not care.
//
//	logger, err := log.New("debug", os.Stderr)
//	if err != nil {
//	    return err
//	}
//	logger.Info("bridge started", log.String("base_url", cfg.BaseURL))
//
// Embedders with their own logging stack implement the four-method Logger
// interface.
package log

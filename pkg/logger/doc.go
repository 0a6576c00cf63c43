// Package logger builds the *slog.Logger shared by the form engine, the
// transport and the command line tool.
//
// New takes functional options. WithEnvironment picks the level and format
// an environment implies (text at debug for development, JSON at info
// elsewhere) and tags records with the service name. WithLevel, WithFormat
// and WithOutput override single settings.
//
// WithContextExtractors registers ContextExtractor callbacks. They run for
// each record logged through a *Context method, so values stored on the
// context, such as the request id, show up without being passed explicitly:
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Development, "formflow"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "submission finished",
//	    logger.Form("signup"),
//	    logger.Outcome(outcome.Kind),
//	    logger.Duration(time.Since(start)),
//	)
//
// The attribute helpers keep key names consistent across packages. Error
// returns an empty attribute for a nil error, which slog drops.
package logger

// Package environment names the deployment environment (development, staging,
// production) and carries it through context.Context and structured logs.
//
// Parse normalises user input such as the -env flag of the formflow command:
//
//	env, err := environment.Parse("prod") // environment.Production
//	ctx = environment.WithContext(ctx, env)
//
// LoggerExtractor plugs into logger.WithContextExtractors and adds an "env"
// attribute to every record logged with a context that carries one.
package environment

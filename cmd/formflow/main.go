// Command formflow drives one of the account forms against a running server
// from the terminal. It prompts for each field, runs the same local rules and
// remote checks as the browser, and prints the outcome of the submission.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/dmitrymomot/formflow/pkg/config"
	"github.com/dmitrymomot/formflow/pkg/environment"
	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/forms"
	"github.com/dmitrymomot/formflow/pkg/logger"
	"github.com/dmitrymomot/formflow/pkg/metrics"
	"github.com/dmitrymomot/formflow/pkg/requestid"
	"github.com/dmitrymomot/formflow/pkg/transport"
)

var errNotAccepted = errors.New("submission not accepted")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, surveyPrompter{})
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	case errors.Is(err, errAborted):
		os.Exit(130)
	default:
		fmt.Fprintln(os.Stderr, "formflow:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, prompt prompter) error {
	fs := flag.NewFlagSet("formflow", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		formName    = fs.String("form", "login", "form to fill in")
		baseURL     = fs.String("base-url", "", "server origin (overrides FORMFLOW_BASE_URL)")
		envName     = fs.String("env", "", "environment: development, staging or production (overrides APP_ENV)")
		envFile     = fs.String("env-file", "", "load variables from this .env file first")
		defsFile    = fs.String("definitions", "", "YAML form definitions to use instead of the built-in ones")
		showMetrics = fs.Bool("metrics", false, "print metrics to stderr on exit")
		traceSpans  = fs.Bool("trace", false, "print HTTP spans to stderr")
		logFormat   = fs.String("log-format", "", "log format: json or text (overrides LOG_FORMAT)")
		params      = pairs{}
		hidden      = pairs{}
	)
	fs.Var(params, "param", "path parameter as name=value, for example token=abc (repeatable)")
	fs.Var(hidden, "hidden", "extra value sent with every request, for example csrfmiddlewaretoken=xyz (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *envFile != "" {
		if err := config.LoadEnv(*envFile); err != nil {
			return err
		}
	}

	var app appConfig
	if err := config.Load(&app); err != nil {
		return err
	}
	if *envName != "" {
		app.Env = *envName
	}
	if *logFormat != "" {
		app.LogFormat = *logFormat
	}
	env, err := environment.Parse(app.Env)
	if err != nil {
		return err
	}

	format, err := logger.ParseFormat(app.LogFormat)
	if err != nil {
		return err
	}
	logOpts := []logger.Option{
		logger.WithEnvironment(env, app.Name),
		logger.WithFormat(format),
		logger.WithOutput(stderr),
		logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
	}
	if level, ok, err := app.level(); err != nil {
		return err
	} else if ok {
		logOpts = append(logOpts, logger.WithLevel(level))
	}
	log := logger.New(logOpts...)

	ctx = environment.WithContext(ctx, env)
	ctx, _ = requestid.Ensure(ctx)

	var formCfg form.Config
	if err := config.Load(&formCfg); err != nil {
		return err
	}
	var transportCfg transport.Config
	if err := config.Load(&transportCfg); err != nil {
		return err
	}
	if *baseURL != "" {
		transportCfg.BaseURL = *baseURL
	}

	clientOpts := []transport.Option{transport.WithLogger(log)}
	if *traceSpans {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(stderr), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		defer func() { _ = tp.Shutdown(context.WithoutCancel(ctx)) }()
		clientOpts = append(clientOpts, transport.WithTracerProvider(tp))
	}
	client, err := transport.New(transportCfg, clientOpts...)
	if err != nil {
		return err
	}

	catalog := forms.Default()
	if *defsFile != "" {
		f, err := os.Open(*defsFile)
		if err != nil {
			return err
		}
		catalog, err = forms.Parse(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	def, err := catalog.Get(*formName)
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(catalog.Names(), ", "))
	}

	labels := make(map[string]string, len(def.Fields))
	for _, f := range def.Fields {
		labels[f.ID] = label(f)
	}
	presenter := newTerminalPresenter(stdout, labels)

	reg := prometheus.NewRegistry()
	ctrl, err := def.Build(forms.Deps{
		Client:    client,
		Params:    params,
		Hidden:    form.Values(hidden),
		Config:    formCfg,
		Presenter: presenter,
		Logger:    log,
		Observer:  metrics.New(reg),
	})
	if err != nil {
		return err
	}
	defer ctrl.Close()
	log.DebugContext(ctx, "form ready", logger.Form(def.Name), logger.URL(client.BaseURL()))

	d := &driver{
		def:    def,
		ctrl:   ctrl,
		prompt: prompt,
		out:    stdout,
		settle: ctrl.Config().RemoteCheckTimeout + time.Second,
	}
	outcome, err := d.run(ctx)
	presenter.finish()

	if *showMetrics {
		if werr := metrics.WriteSummary(stderr, reg); werr != nil {
			log.Warn("metrics summary failed", logger.Error(werr))
		}
	}

	if err != nil {
		return err
	}
	if outcome.Kind != form.OutcomeSuccess {
		return fmt.Errorf("%w: %s", errNotAccepted, outcome.Kind)
	}
	return nil
}

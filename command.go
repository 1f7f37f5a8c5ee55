package main

import (
	"consultags/consul"
	consulagent "consultags/consul/agent"
	"consultags/entity"
	"consultags/entity/validator"
	"consultags/handler"
	probeRunner "consultags/probe/runner"
	env "consultags/tool/environment"
	toollogrus "consultags/tool/logrus"
	"context"
	"fmt"
	"github.com/hashicorp/consul/api"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"io"
	"net/http"
	"os"
)

const (
	appName = "consul-role-tagger"

	consulDataDirEnv   = "CONSUL_DATA_DIR"
	consulAgentEnv     = "CONSUL_AGENT"
	logstashAddressEnv = "LOGSTASH_ADDRESS"
	jaegerAddressEnv   = "JAEGER_ADDRESS"
)

type flags struct {
	entity.Config
	logLevel  string
	logFormat string
	envFile   string
}

// run execute command once & return exit code of process
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ran := false
	cmd := newRootCommand(&ran)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return handler.ExitOK
	}

	fmt.Fprintf(stderr, "%s: %v\n", appName, err)
	if !ran {
		// flag parsing & required flag check of cobra fail before RunE
		return handler.ExitConfiguration
	}
	return handler.ExitCode(err)
}

func newRootCommand(ran *bool) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Tag service of local node as active or standby in consul catalog",
		Long: "Run health check command, compare its output with --result-true & --result-false\n" +
			"and register service of local node in consul catalog with active or standby tag.\n" +
			"Requires " + consulDataDirEnv + " & " + consulAgentEnv + " in environment variables.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			*ran = true
			return runE(cmd.Context(), f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.Command, "command", "", "health check command line, split on whitespace")
	fs.StringVar(&f.ResultTrue, "result-true", "", "output of health check command meaning active")
	fs.StringVar(&f.ResultFalse, "result-false", "", "output of health check command meaning standby")
	fs.StringVar(&f.ServiceName, "service", entity.DefaultServiceName, "name of service registered in consul catalog")
	fs.StringVar(&f.ActiveTag, "active-tag", entity.DefaultActiveTag, "tag appended when node is active")
	fs.StringVar(&f.StandbyTag, "standby-tag", entity.DefaultStandbyTag, "tag appended when node is standby")
	fs.BoolVar(&f.ReplaceRoleTags, "replace-role-tags", false, "remove existing active & standby tags before appending new one")
	fs.BoolVar(&f.DryRun, "dry-run", false, "print service record instead of registering it")
	fs.DurationVar(&f.Timeout, "timeout", 0, "deadline of whole run, 0 means no deadline")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error, silent)")
	fs.StringVar(&f.logFormat, "log-format", toollogrus.FormatText, "log format (text, json)")
	fs.StringVar(&f.envFile, "env-file", "", "dotenv file loaded into environment before reading variables")

	for _, name := range []string{"command", "result-true", "result-false"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runE(ctx context.Context, f *flags, stdout, stderr io.Writer) (err error) {
	if err = env.LoadFile(f.envFile); err != nil {
		return handler.WithKind(handler.ErrConfiguration, err)
	}
	if f.ConsulDataDir, err = env.GetRequired(consulDataDirEnv); err != nil {
		return handler.WithKind(handler.ErrConfiguration, err)
	}
	if f.ConsulAgent, err = env.GetRequired(consulAgentEnv); err != nil {
		return handler.WithKind(handler.ErrConfiguration, err)
	}

	logger, err := toollogrus.New(
		toollogrus.Output(stderr),
		toollogrus.Level(f.logLevel),
		toollogrus.Format(f.logFormat),
		toollogrus.LogstashAddress(os.Getenv(logstashAddressEnv)),
		toollogrus.Fields(logrus.Fields{"type": appName}),
	)
	if err != nil {
		return handler.WithKind(handler.ErrConfiguration, err)
	}

	tracer, closer, err := newTracer(os.Getenv(jaegerAddressEnv))
	if err != nil {
		return handler.WithKind(handler.ErrConfiguration, err)
	}
	defer func() {
		_ = closer.Close()
	}()

	consulCfg := api.DefaultConfig()
	consulCfg.Address = f.ConsulAgent
	consulCfg.Scheme = "http"
	consulCfg.HttpClient = &http.Client{Transport: consulCfg.Transport}
	consulCli, err := api.NewClient(consulCfg)
	if err != nil {
		return handler.WithKind(handler.ErrConfiguration, fmt.Errorf("unable to create consul client, err: %v", err))
	}

	h := handler.Default(
		handler.ConsulAgent(consulagent.Default(
			consulagent.Client(consulCli),
			consulagent.Config(consulCfg),
			consulagent.Service(consul.ServiceName(f.ServiceName)),
		)),
		handler.ProbeRunner(probeRunner.Default(probeRunner.Logger(logger))),
		handler.Logger(logger),
		handler.Validate(validator.New()),
		handler.Tracer(tracer),
	)

	resp, err := h.UpdateRoleTags(ctx, f.Config)
	if err != nil {
		return
	}

	_, err = fmt.Fprintln(stdout, string(resp))
	return
}

type noopCloser struct{}

func (noopCloser) Close() error {
	return nil
}

// create jaeger tracer reporting to agent at addr, noop tracer is returned if addr is empty
func newTracer(addr string) (opentracing.Tracer, io.Closer, error) {
	if addr == "" {
		return opentracing.NoopTracer{}, noopCloser{}, nil
	}

	tracer, closer, err := jaegercfg.Configuration{
		ServiceName: appName,
		Reporter:    &jaegercfg.ReporterConfig{LogSpans: false, LocalAgentHostPort: addr},
		Sampler:     &jaegercfg.SamplerConfig{Type: jaeger.SamplerTypeConst, Param: 1},
	}.NewTracer()
	if err != nil {
		return nil, nil, fmt.Errorf("error while creating new tracer for %s, err: %v", addr, err)
	}
	return tracer, closer, nil
}

// Package commands implements the blog command line.
package commands

import (
	"context"
	"errors"

	"github.com/ncobase/blogclient/cmd/blog/app"
	"github.com/ncobase/blogclient/config"
	"github.com/ncobase/blogclient/logging/logger"
	"github.com/ncobase/blogclient/observes"
	"github.com/ncobase/blogclient/session"
	"github.com/ncobase/blogclient/tracing"
	"github.com/ncobase/blogclient/version"
	"github.com/ncobase/blogclient/view"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Factory builds the application for one invocation.
type Factory func(ctx context.Context, configFile, logLevel string) (*app.App, func(), error)

// skipApp marks commands that run without configuration.
const skipApp = "skip-app"

// errSignInRequired is returned by commands that need a session.
var errSignInRequired = errors.New("please sign in first with: blog login")

type runtime struct {
	factory    Factory
	configFile string
	logLevel   string

	app     *app.App
	cleanup func()
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultFactory)
}

func newRootCmd(factory Factory) *cobra.Command {
	r := &runtime{factory: factory}
	rootCmd := &cobra.Command{
		Use:               "blog",
		Short:             "Read and write posts on the blog platform",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
		PersistentPostRun: r.teardown,
	}
	rootCmd.PersistentFlags().StringVarP(&r.configFile, "config", "c", "", "config file path (default $HOME/.blog/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&r.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newLoginCommand(r),
		newLogoutCommand(r),
		newWhoamiCommand(r),
		newRegisterCommand(r),
		newConfirmCommand(r),
		newPostsCommand(r),
		newCommentsCommand(r),
		newProfileCommand(r),
		newVersionCommand(),
	)
	return rootCmd
}

func defaultFactory(ctx context.Context, configFile, logLevel string) (*app.App, func(), error) {
	config.SetPath(configFile)
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		lvl, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return nil, nil, err
		}
		cfg.Logger.Level = int(lvl)
	}
	info := version.GetVersionInfo()
	logger.SetVersion(info.Version)

	a, cleanup, err := app.InitializeApp()
	if err != nil {
		return nil, nil, err
	}
	s := cfg.Observes.Sentry
	release := s.Release
	if release == "" {
		release = info.Version
	}
	flush, err := observes.NewSentry(&observes.SentryOptions{
		Dsn:         s.Endpoint,
		Name:        cfg.AppName,
		Release:     release,
		Environment: s.Environment,
		SampleRate:  s.SampleRate,
	})
	if err != nil {
		logger.Warnf(ctx, "sentry disabled: %v", err)
	}
	return a, func() {
		flush()
		cleanup()
	}, nil
}

func (r *runtime) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipApp] == "true" {
		return nil
	}
	ctx, _ := tracing.EnsureTraceID(cmd.Context())
	cmd.SetContext(ctx)
	a, cleanup, err := r.factory(ctx, r.configFile, r.logLevel)
	if err != nil {
		return err
	}
	r.app, r.cleanup = a, cleanup
	a.Session.Init(ctx)
	return nil
}

func (r *runtime) teardown(*cobra.Command, []string) {
	if r.cleanup != nil {
		r.cleanup()
		r.cleanup = nil
	}
}

func (r *runtime) deps() *view.Deps { return r.app.Deps() }

// gate fails unless a session exists.
func (r *runtime) gate(page interface{ Access() session.Access }) error {
	if page.Access() != session.Allow {
		return errSignInRequired
	}
	return nil
}

// run adapts fn to cobra and reports its failure. Cobra skips post-run
// hooks after an error, so a failed run tears down here.
func (r *runtime) run(fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		err := fn(ctx, cmd, args)
		if err != nil {
			logger.Debugf(ctx, "%s failed: %v", cmd.CommandPath(), err)
			observes.Report(ctx, cmd.CommandPath(), err)
			r.teardown(cmd, args)
		}
		return err
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/pageza/fridge/config"
	"github.com/pageza/fridge/internal/api"
	"github.com/pageza/fridge/internal/auth"
	"github.com/pageza/fridge/internal/logger"
	"github.com/pageza/fridge/internal/session"
)

const envKey = "env"

// env is what every command runs against
type env struct {
	cfg     *config.Config
	log     *logrus.Logger
	manager *auth.Manager
	reg     *prometheus.Registry
	closer  io.Closer
	out     io.Writer
	json    bool
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "fridge",
		Usage:     "plan meals from what is in your fridge",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-url", Usage: "backend base URL (overrides API_URL)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn, error or off (overrides LOG_LEVEL)"},
			&cli.BoolFlag{Name: "json", Usage: "print results as JSON"},
			&cli.BoolFlag{Name: "metrics", Usage: "print request metrics to stderr on exit"},
		},
		Before: func(c *cli.Context) error {
			e, err := setup(c, stderr)
			if err != nil {
				return err
			}
			c.App.Metadata = map[string]interface{}{envKey: e}
			return nil
		},
		After: func(c *cli.Context) error {
			e, ok := c.App.Metadata[envKey].(*env)
			if !ok {
				return nil
			}
			if c.Bool("metrics") {
				if err := writeMetrics(stderr, e.reg); err != nil {
					e.log.WithError(err).Warn("failed to write metrics")
				}
			}
			return e.closer.Close()
		},
		Commands: []*cli.Command{
			loginCommand(),
			registerCommand(),
			logoutCommand(),
			whoamiCommand(),
			recipesCommand(),
			userCommand(),
			fitnessCommand(),
			dashboardCommand(),
		},
	}
}

func setup(c *cli.Context, stderr io.Writer) (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if u := c.String("api-url"); u != "" {
		cfg.APIURL = u
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	log := logger.New(cfg.LogLevel, stderr)

	kv, closer, err := session.Open(c.Context, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	reg := prometheus.NewRegistry()
	nav := auth.NavigatorFunc(func(route string) {
		log.WithField("route", route).Debug("navigate")
	})
	manager := auth.New(c.Context, session.NewStore(kv, log),
		auth.WithBaseURL(cfg.APIURL),
		auth.WithTimeout(cfg.HTTPTimeout),
		auth.WithNavigator(nav),
		auth.WithLogger(log),
		auth.WithClientOptions(api.WithLogger(log), api.WithMetrics(api.NewMetrics(reg))),
	)

	return &env{
		cfg:     cfg,
		log:     log,
		manager: manager,
		reg:     reg,
		closer:  closer,
		out:     c.App.Writer,
		json:    c.Bool("json"),
	}, nil
}

func getEnv(c *cli.Context) *env {
	return c.App.Metadata[envKey].(*env)
}

// action wraps a command body with the shared env
func action(fn func(ctx context.Context, c *cli.Context, e *env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		return fn(c.Context, c, getEnv(c))
	}
}

// authed wraps a command that needs a signed-in session
func authed(fn func(ctx context.Context, c *cli.Context, e *env, client *api.Client) error) cli.ActionFunc {
	return action(func(ctx context.Context, c *cli.Context, e *env) error {
		if !e.manager.Session().Authenticated() {
			return errors.New("not signed in, run `fridge login` first")
		}
		err := fn(ctx, c, e, e.manager.Client())
		if api.IsUnauthorized(err) {
			return fmt.Errorf("%w (session expired, run `fridge login` again)", err)
		}
		return err
	})
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sky-flux/sm2"
	"github.com/sky-flux/sm2/metrics"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer

	logger    *slog.Logger
	clock     sm2.Clock
	scheduler *sm2.Scheduler
	registry  *prometheus.Registry
	recorder  *metrics.Recorder
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "sm2deck",
		Short:         "Review a vocabulary deck with SM-2 spaced repetition",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if !a.v.GetBool("metrics") {
				return nil
			}
			return metrics.WriteText(a.out, a.registry)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (yaml)")
	pf.String("deck", "deck.yaml", "deck file")
	pf.String("now", "", "evaluation time in RFC3339 (default: current time)")
	pf.Int("max-interval", sm2.DefaultMaximumInterval, "maximum interval in days")
	pf.Bool("fuzz", false, "spread review intervals over a small window")
	pf.Bool("metrics", false, "print Prometheus metrics after the command")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")

	root.AddCommand(
		a.addCmd(),
		a.dueCmd(),
		a.reviewCmd(),
		a.previewCmd(),
		a.rescheduleCmd(),
		a.statsCmd(),
		a.forecastCmd(),
		a.simulateCmd(),
	)
	return root
}

// init binds flags, environment and config file into viper, then builds the
// logger, clock, scheduler and metrics recorder.
func (a *app) init(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	a.v.SetEnvPrefix("SM2DECK")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	a.logger = newLogger(a.v.GetString("log-level"), a.v.GetString("log-format"), a.errOut)

	a.clock = sm2.SystemClock
	if s := a.v.GetString("now"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parse --now: %w", err)
		}
		a.clock = sm2.FixedClock(t)
	}

	var err error
	a.scheduler, err = sm2.NewScheduler(sm2.SchedulerConfig{
		MaximumInterval: a.v.GetInt("max-interval"),
		EnableFuzz:      a.v.GetBool("fuzz"),
	})
	if err != nil {
		return err
	}

	a.registry = prometheus.NewRegistry()
	a.recorder, err = metrics.NewRecorder(a.registry)
	if err != nil {
		return err
	}

	a.logger.Debug("sm2deck initialized",
		"deck", a.v.GetString("deck"),
		"config", a.v.ConfigFileUsed(),
		"now", a.clock.Now(),
	)
	return nil
}

func (a *app) now() time.Time {
	return a.clock.Now()
}

// loadDeck loads the configured deck and refreshes the deck gauges.
func (a *app) loadDeck() (*Deck, string, error) {
	path := a.v.GetString("deck")
	d, err := loadDeck(path)
	if err != nil {
		return nil, "", err
	}
	a.recorder.ObserveStats(sm2.Summarize(d.items(), a.now(), 0))
	a.logger.Debug("deck loaded", "path", path, "entries", len(d.Entries), "logs", len(d.Logs))
	return d, path, nil
}

func (a *app) saveDeck(d *Deck, path string) error {
	if err := d.save(path); err != nil {
		return err
	}
	a.recorder.ObserveStats(sm2.Summarize(d.items(), a.now(), 0))
	a.logger.Debug("deck saved", "path", path, "entries", len(d.Entries))
	return nil
}

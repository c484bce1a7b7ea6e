package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"lunarcal/internal/calendar"
	"lunarcal/internal/config"
	appLog "lunarcal/internal/log"
	"lunarcal/internal/web"
)

const version = "0.1.0"

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	listen     string
	month      string
	day        string
	icsPath    string
	debug      bool
}

func main() {
	flags := parseFlags()
	if flags.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}
	appLog.Info("lunarcal starting", "version", version)

	conf, err := config.Load(flags.configPath)
	if err != nil {
		if conf == nil {
			appLog.Error("failed to load config", err, "config_path", flags.configPath)
			os.Exit(1)
		}
		// First run without a writable config dir: keep going on defaults.
		appLog.Error("failed to write default config; using defaults", err, "config_path", flags.configPath)
	}
	if !flags.debug {
		appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))
	}
	if flags.listen != "" {
		conf.Listen = flags.listen
	}

	loc, err := conf.Location()
	if err != nil {
		appLog.Error("invalid timezone; falling back to local", err)
		loc = time.Local
	}

	appLog.Info("effective config",
		"listen", conf.Listen,
		"timezone", loc.String(),
		"week_start", conf.WeekStart,
		"grid_policy", conf.GridPolicy,
		"refresh", conf.RefreshCron,
		"upcoming_days", conf.UpcomingDays,
	)

	if code, handled := runOneShot(flags, conf, loc); handled {
		os.Exit(code)
	}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	srv := web.NewServer(conf, nil)

	sched, err := startRollover(conf, loc, srv)
	if err != nil {
		appLog.Error("failed to start rollover job", err)
		os.Exit(1)
	}
	defer func() { <-sched.Stop().Done() }()

	if err := srv.Run(ctx); err != nil {
		appLog.Error("http server failed", err)
		os.Exit(1)
	}
	appLog.Info("lunarcal exiting")
}

// runOneShot handles -month, -day and -ics. It reports whether one of them
// ran, and the process exit code.
func runOneShot(flags flagConfig, conf *config.Config, loc *time.Location) (int, bool) {
	now := time.Now().In(loc)

	var err error
	switch {
	case flags.month != "":
		err = printMonth(os.Stdout, conf, flags.month, now)
	case flags.day != "":
		err = printDay(os.Stdout, flags.day, now)
	case flags.icsPath != "":
		err = writeFeed(flags.icsPath, conf, now)
	default:
		return 0, false
	}
	if err != nil {
		appLog.Error("one-shot render failed", err)
		return 1, true
	}
	return 0, true
}

// startRollover schedules the job that drops cached grids once the date
// changes in the configured timezone.
func startRollover(conf *config.Config, loc *time.Location, srv *web.Server) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(conf.RefreshCron, func() {
		srv.InvalidateCache()
		detail := calendar.BuildDayDetail(time.Now().In(loc))
		appLog.Info("day rollover",
			"date", detail.Date.Format(time.DateOnly),
			"lunar", detail.LunarDate,
			"festival", detail.Festival,
			"solar_term", detail.SolarTerm,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("rollover schedule %q: %w", conf.RefreshCron, err)
	}
	c.Start()
	appLog.Info("rollover job scheduled", "refresh", conf.RefreshCron, "timezone", loc.String())
	return c, nil
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/lunarcal/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.month, "month", "", "Print the grid of a month (YYYY-MM, or \"now\") and exit")
	flag.StringVar(&cfg.day, "day", "", "Print the detail of a day (YYYY-MM-DD, or \"now\") as JSON and exit")
	flag.StringVar(&cfg.icsPath, "ics", "", "Write the observance feed to a file (\"-\" for stdout) and exit")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}

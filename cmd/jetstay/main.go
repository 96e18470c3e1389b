// Command jetstay is a terminal front-end for the JetStay booking API.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/omarzydan610/JetStay-sub001/cache"
	"github.com/omarzydan610/JetStay-sub001/config"
	"github.com/omarzydan610/JetStay-sub001/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr, time.Now).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		os.Exit(1)
	}
}

// app is the state shared by every command.
type app struct {
	server  string
	jsonOut bool
	verbose bool

	out    io.Writer
	errOut io.Writer
	client *services.Client
	store  cache.Store
	logger *slog.Logger
	now    func() time.Time
}

func newRootCmd(out, errOut io.Writer, now func() time.Time) *cobra.Command {
	a := &app{out: out, errOut: errOut, now: now}

	root := &cobra.Command{
		Use:           "jetstay",
		Short:         "Search, book and manage JetStay flights and hotels",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.server, "server", "", "API base URL (default $JETSTAY_API_URL)")
	flags.BoolVar(&a.jsonOut, "json", false, "print raw JSON instead of tables")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.signupCmd(),
		a.passwordCmd(),
		a.flightsCmd(),
		a.hotelsCmd(),
		a.bookingsCmd(),
		a.adminCmd(),
		a.rangeCmd(),
	)
	return root
}

// init builds the API client from the environment and the global flags.
func (a *app) init(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.server != "" {
		cfg.API.BaseURL = strings.TrimRight(a.server, "/")
	}

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	// Redis keeps reference lists between invocations; memory only lasts
	// for this one.
	a.store = nil
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			a.logger.Warn("redis unavailable, caching in memory", "error", err)
		} else {
			a.store = rdb
		}
	}
	if a.store == nil {
		a.store = cache.NewMemory()
	}

	a.client = services.NewClient(cfg.API.BaseURL, services.NewFileTokenStore(cfg.API.TokenFile),
		services.WithTimeout(cfg.API.Timeout),
		services.WithCache(cache.NewLoader(a.store, cfg.Redis.CacheTTL)),
		services.WithLogger(a.logger),
	)
	a.logger.Debug("using API", "url", cfg.API.BaseURL, "token_file", cfg.API.TokenFile)
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// describe turns API errors into one line, with the per field messages of
// validation failures.
func describe(err error) string {
	apiErr := services.AsAPIError(err)
	if apiErr.Code == services.CodeUnknown {
		return err.Error()
	}
	msg := apiErr.Message
	fields := apiErr.Fields()
	if len(fields) == 0 {
		return msg
	}
	keys := sortedKeys(fields)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return msg + " (" + strings.Join(parts, "; ") + ")"
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/bookinn"
	"github.com/bft-labs/bookinn/internal/cliconfig"
	"github.com/bft-labs/bookinn/internal/menu"
	"github.com/bft-labs/bookinn/pkg/log"
)

const longHelp = `
Book rooms for guests and manage the room inventory of a small hotel.

State lives in two files in the data directory: rooms.csv and bookings.csv.
Every change is written immediately, and everything is saved again on exit.
Configure via file ($HOME/.bookinn/config.toml or .yaml), BOOKINN_* env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  bookinn --data-dir /var/lib/bookinn
  bookinn rooms --available
  bookinn bookings --config ./bookinn.yaml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bookinn:", err)
		os.Exit(1)
	}
}

// cli carries the configuration shared by the root command and its listings.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	stdout  io.Writer
	stderr  io.Writer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{cfg: cliconfig.DefaultConfig(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "bookinn",
		Short:         "Interactive hotel room booking",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := c.setup(cmd)
			if err != nil {
				return err
			}
			return c.runMenu(cmd.Context(), stdin, logger)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	// Flags
	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.bookinn/config.toml)")
	pf.StringVar(&c.cfg.DataDir, "data-dir", c.cfg.DataDir, "directory holding the store files")
	pf.StringVar(&c.cfg.RoomsFile, "rooms-file", c.cfg.RoomsFile, "rooms store file, relative to data-dir unless absolute")
	pf.StringVar(&c.cfg.BookingsFile, "bookings-file", c.cfg.BookingsFile, "bookings store file, relative to data-dir unless absolute")
	pf.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")
	pf.BoolVar(&c.cfg.StrictCategories, "strict-categories", c.cfg.StrictCategories, "treat unknown room categories as malformed records")
	pf.BoolVar(&c.cfg.WatchStores, "watch", c.cfg.WatchStores, "warn when store files are changed by another program")
	pf.DurationVar(&c.cfg.WatchDebounce, "watch-debounce", c.cfg.WatchDebounce, "quiet period before a changed store is checked")

	root.AddCommand(c.roomsCmd(), c.bookingsCmd())
	return root
}

// setup layers config file, env and flags, then builds the logger.
func (c *cli) setup(cmd *cobra.Command) (log.Logger, error) {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	// Build set of changed flags
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return nil, err
		}
	} else if c.cfgPath != "" {
		return nil, fmt.Errorf("config file %s not found", c.cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return nil, err
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	zl := cliconfig.Logger(c.cfg, c.stderr, uuid.NewString())
	zl.Debug().Interface("config", c.cfg).Msg("configuration")
	return log.NewZerologAdapter(zl), nil
}

func (c *cli) runMenu(parent context.Context, stdin io.Reader, logger log.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inn, err := bookinn.Open(ctx, c.cfg, logger)
	if inn == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(c.stderr, "Could not load saved data (%v). Starting with an empty hotel; the old files were moved aside.\n", err)
	}

	runErr := menu.New(inn, stdin, c.stdout, logger).Run(ctx)
	if errors.Is(runErr, context.Canceled) {
		logger.Info("interrupted, saving")
		runErr = nil
	}

	// The final save must run even after an interrupt.
	if err := inn.Close(context.WithoutCancel(ctx)); err != nil {
		return errors.Join(runErr, fmt.Errorf("final save: %w", err))
	}
	return runErr
}

func (c *cli) roomsCmd() *cobra.Command {
	var available bool
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List rooms without starting the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := c.setup(cmd)
			if err != nil {
				return err
			}
			h, err := bookinn.Snapshot(cmd.Context(), c.cfg, logger)
			if err != nil {
				return err
			}

			rooms, empty := h.AllRooms(), "No rooms."
			if available {
				rooms, empty = h.AvailableRooms(), "No available rooms."
			}
			found := false
			for r := range rooms {
				fmt.Fprintln(c.stdout, menu.FormatRoom(r, !available))
				found = true
			}
			if !found {
				fmt.Fprintln(c.stdout, empty)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&available, "available", false, "only list rooms that are not booked")
	return cmd
}

func (c *cli) bookingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List active bookings without starting the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := c.setup(cmd)
			if err != nil {
				return err
			}
			h, err := bookinn.Snapshot(cmd.Context(), c.cfg, logger)
			if err != nil {
				return err
			}
			found := false
			for b := range h.AllBookings() {
				fmt.Fprintln(c.stdout, menu.FormatBooking(b))
				found = true
			}
			if !found {
				fmt.Fprintln(c.stdout, "No bookings.")
			}
			return nil
		},
	}
}

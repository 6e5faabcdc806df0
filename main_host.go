//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bonnet/app"
	"bonnet/hal"
	"bonnet/internal/buildinfo"
	"bonnet/internal/config"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	headless   bool
	tty        bool
	hz         int
	ticks      uint64
	keys       string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "bonnet",
		Short:        "Browse the files on USB sticks and SD cards from a 128x64 panel",
		Long:         "Runs the drive viewer in a desktop window by default. Use --headless for scripted runs or --tty to draw the panel in the terminal.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd.Context(), cmd, o)
		},
	}
	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "",
		"Config file (default $BONNET_CONFIG or ~/.config/bonnet/config.toml).")
	cmd.Flags().BoolVar(&o.headless, "headless", false,
		"Run without a window; print the last frame on exit.")
	cmd.Flags().BoolVar(&o.tty, "tty", false,
		"Draw the panel in the terminal.")
	cmd.Flags().IntVar(&o.hz, "hz", 0,
		"UI tick rate (default from config).")
	cmd.Flags().Uint64Var(&o.ticks, "ticks", 0,
		"Stop after N ticks in headless mode (0 = run until interrupted).")
	cmd.Flags().StringVar(&o.keys, "keys", "",
		"Comma separated buttons to press in headless mode, e.g. enter,down,enter.")
	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "",
		"Log level override (debug, info, warn, error).")
	cmd.MarkFlagsMutuallyExclusive("headless", "tty")

	cmd.AddCommand(newDrivesCmd(o), newVersionCmd())
	return cmd
}

func loadConfig(o *rootOptions) (config.Config, error) {
	cfg, err := config.Load(config.Path(o.configPath), config.Default())
	if err != nil {
		return config.Config{}, err
	}
	if o.hz > 0 {
		cfg.UI.Hz = o.hz
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, cfg.Validate()
}

func runViewer(ctx context.Context, cmd *cobra.Command, o *rootOptions) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	var logOut io.Writer
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	} else if o.tty {
		logOut = io.Discard
	}

	hostCfg := hal.HostConfig{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		Scale:  cfg.Display.Scale,
		Log:    cmd.ErrOrStderr(),
	}
	opts := app.Options{Config: cfg, LogOutput: logOut}

	var present app.Present
	switch {
	case o.headless:
		keys, err := parseKeys(o.keys)
		if err != nil {
			return err
		}
		hc := hal.HeadlessConfig{
			Hz:    cfg.UI.Hz,
			Ticks: o.ticks,
			Keys:  keys,
			Dump:  cmd.OutOrStdout(),
		}
		present = func(ctx context.Context, newApp func(hal.HAL) func() error) error {
			return hal.RunHeadless(ctx, hostCfg, newApp, hc)
		}
	case o.tty:
		present = func(ctx context.Context, newApp func(hal.HAL) func() error) error {
			return hal.RunTTY(ctx, hostCfg, newApp, cfg.UI.Hz)
		}
	default:
		present = func(_ context.Context, newApp func(hal.HAL) func() error) error {
			return hal.RunWindow(hostCfg, newApp)
		}
	}

	err = app.Run(ctx, opts, nil, present)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func parseKeys(s string) ([]hal.KeyCode, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var keys []hal.KeyCode
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		k := hal.ParseKey(name)
		if k == hal.KeyUnknown {
			return nil, fmt.Errorf("unknown key %q (want up, down, left, right, enter or back)", name)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func newDrivesCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "drives",
		Short: "Scan once and print the drives the viewer would offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(o)
			if err != nil {
				return err
			}
			list, err := app.NewScanner(cfg.Devices).Scan(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "no drives")
				return nil
			}
			for _, d := range list {
				mp := d.MountPoint
				if mp == "" {
					mp = "-"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", d.ID, d, mp)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/logbridge"
	"github.com/bft-labs/logbridge/internal/cliconfig"
	"github.com/bft-labs/logbridge/internal/domain"
	"github.com/bft-labs/logbridge/pkg/log"
)

const helpDescription = `
Bridge blocking JSON requests between a journal client and its web host.

Highlights:
  - send: one blocking request, body printed as-is.
  - exports/call: inspect and invoke the exported function table.
  - overview/read: query the host's journal API.
  - serve: run the reference host over a local directory of entries.

Configure via $HOME/.logbridge/config.toml, a .env file, LOGBRIDGE_* variables or flags.
`

var exampleUsage = strings.TrimSpace(`
  logbridge send POST /api/notes '{"a":1}'
  logbridge call getContent 2024 3 4
  logbridge overview 2024 --base-url https://journal.example
  logbridge serve --log-dir ~/journal --listen 127.0.0.1:8080
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli carries the configuration shared by every subcommand.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	envPath string
	logger  log.Logger
	out     io.Writer
}

func main() {
	c := &cli{cfg: cliconfig.DefaultConfig(), out: os.Stdout}

	root := &cobra.Command{
		Use:           "logbridge",
		Short:         "Blocking request bridge between a journal client and its web host",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.logbridge/config.toml)")
	flags.StringVar(&c.envPath, "env-file", ".env", "path to a .env file loaded before LOGBRIDGE_* variables")
	flags.StringVar(&c.cfg.BaseURL, "base-url", c.cfg.BaseURL, "host URL relative request URLs resolve against")
	flags.StringVar(&c.cfg.AuthToken, "auth-token", c.cfg.AuthToken, "bearer token sent with every request")
	flags.StringVar(&c.cfg.TokenFile, "token-file", c.cfg.TokenFile, "file holding the bearer token, reloaded on change (client and serve)")
	flags.DurationVar(&c.cfg.HTTPTimeout, "timeout", c.cfg.HTTPTimeout, "per-request timeout (0 waits indefinitely)")
	flags.IntVar(&c.cfg.QueueSize, "queue-size", c.cfg.QueueSize, "requests waiting for the worker")
	flags.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&c.cfg.SkipFirstLine, "skip-first-line", c.cfg.SkipFirstLine, "treat each entry's first line as a date header, not a section")

	root.AddCommand(
		c.sendCmd(),
		c.exportsCmd(),
		c.callCmd(),
		c.overviewCmd(),
		c.readCmd(),
		c.serveCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "logbridge: %v\n", err)
		os.Exit(1)
	}
}

// load layers configuration: file, then .env and environment, then flags.
func (c *cli) load(cmd *cobra.Command) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.LoadDotEnv(c.envPath); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	logger, err := c.cfg.Logger()
	if err != nil {
		return err
	}
	c.logger = logger
	c.logger.Debug("configuration",
		log.String("base_url", c.cfg.BaseURL),
		log.Bool("auth_token_set", c.cfg.AuthToken != ""),
		log.String("token_file", c.cfg.TokenFile),
		log.Duration("timeout", c.cfg.HTTPTimeout),
	)
	return nil
}

// bridge builds and starts a bridge for the current configuration.
func (c *cli) bridge(ctx context.Context) (*logbridge.Bridge, error) {
	b, err := logbridge.New(logbridge.Config{
		BaseURL:     c.cfg.BaseURL,
		AuthToken:   c.cfg.AuthToken,
		TokenFile:   c.cfg.TokenFile,
		HTTPTimeout: c.cfg.HTTPTimeout,
		QueueSize:   c.cfg.QueueSize,
	}, logbridge.WithLogger(c.logger))
	if err != nil {
		return nil, fmt.Errorf("create bridge: %w", err)
	}
	if err := b.Start(ctx); err != nil {
		return nil, fmt.Errorf("start bridge: %w", err)
	}
	return b, nil
}

func (c *cli) sendCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "send METHOD URL [PAYLOAD]",
		Short: "Perform one blocking request and print the response body",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := ""
			if len(args) == 3 {
				payload = args[2]
			}

			b, err := c.bridge(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Stop()

			if !strict {
				fmt.Fprintln(c.out, b.Send(args[0], args[1], payload))
				return nil
			}

			resp, err := b.Do(cmd.Context(), logbridge.Request{Method: args[0], URL: args[1], Payload: payload})
			if resp.Body != "" {
				fmt.Fprintln(c.out, resp.Body)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on transport errors, non-2xx status and empty bodies")
	return cmd
}

func (c *cli) exportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exports",
		Short: "List the exported functions and their signatures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := logbridge.New(logbridge.Config{BaseURL: c.cfg.BaseURL}, logbridge.WithLogger(c.logger))
			if err != nil {
				return err
			}
			for _, name := range b.Exports() {
				e, _ := b.Lookup(name)
				fmt.Fprintln(c.out, e.Signature())
			}
			return nil
		},
	}
}

func (c *cli) callCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call NAME [ARGS...]",
		Short: "Invoke an exported function",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.bridge(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Stop()

			v, err := b.CallStrings(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			if v != nil {
				fmt.Fprintln(c.out, v)
			}
			return nil
		},
	}
}

func (c *cli) overviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview YEAR",
		Short: "Fetch a year overview from the host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: year %q", domain.ErrInvalidDate, args[0])
			}

			b, err := c.bridge(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Stop()

			ov, err := b.Overview(cmd.Context(), year)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(c.out)
			enc.SetIndent("", "  ")
			return enc.Encode(ov)
		},
	}
}

func (c *cli) readCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read DATE",
		Short: "Print the entry for DATE (YYYY-MM-DD) from the host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := domain.ParseDate(args[0])
			if err != nil {
				return err
			}

			b, err := c.bridge(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Stop()

			entry, ok, err := b.ReadLog(cmd.Context(), date)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no entry for %s", date)
			}
			fmt.Fprint(c.out, entry.Content)
			return nil
		},
	}
}

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference host over a directory of entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.cfg.ValidateServe(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, c.cfg, c.logger)
		},
	}
	cmd.Flags().StringVar(&c.cfg.LogDir, "log-dir", c.cfg.LogDir, "directory holding <yyyy>/<mm>/<dd>.md entries")
	cmd.Flags().StringVar(&c.cfg.ListenAddr, "listen", c.cfg.ListenAddr, "address to listen on")
	return cmd
}

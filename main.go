// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/crewkernegazette/gazette/auth"
	"github.com/crewkernegazette/gazette/cliparse"
	"github.com/crewkernegazette/gazette/gazette"
	"github.com/crewkernegazette/gazette/opinions"
	"github.com/crewkernegazette/gazette/session"
	"github.com/crewkernegazette/gazette/transport"
	"github.com/crewkernegazette/gazette/ui"
)

var (
	// Global flags
	flagEnv     string
	flagBaseURL string
	flagDataDir string
	verbose     bool

	cfg    cliparse.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gazette",
	Short: "The Crewkerne Gazette - terminal edition",
	Long: `The Crewkerne Gazette terminal client: the front page, sections,
the opinion of the day with voting and comments, and the newsroom
dashboard for signed-in admins.

Run without arguments to open the paper.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = cliparse.Resolve(flagEnv, flagBaseURL, flagDataDir, verbose)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}

		// The interactive app owns the terminal, so its logs go to a file
		// under the data dir. Subcommands log to stderr.
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if cmd.CalledAs() == "gazette" {
			config.OutputPaths = []string{filepath.Join(cfg.DataDir, "gazette.log")}
			config.ErrorOutputPaths = config.OutputPaths
		}
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp()
	},
}

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Sign in as an admin without opening the app",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, machine, _ := buildClient(nil)
		defer store.Close()

		password := os.Getenv("GAZETTE_PASSWORD")
		if password == "" {
			fmt.Fprint(os.Stderr, "Password: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		result := machine.Login(context.Background(), args[0], password)
		if !result.Success {
			return fmt.Errorf("login failed: %s", result.Error)
		}
		fmt.Printf("Signed in as %s.\n", args[0])
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored admin session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, machine, _ := buildClient(nil)
		defer store.Close()

		machine.Logout()
		fmt.Println("Signed out.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored sessions and target backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, machine, _ := buildClient(nil)
		defer store.Close()

		state := machine.Resolve(context.Background())
		fmt.Printf("environment:  %s\n", cfg.Env)
		fmt.Printf("backend:      %s\n", cfg.BaseURL)
		fmt.Printf("admin:        %s\n", state)
		if user := machine.User(); user != nil {
			fmt.Printf("signed in as: %s\n", user.Username)
		}
		if name := store.Get(session.SlotOpinionUsername); name != "" {
			fmt.Printf("opinion user: %s\n", name)
		} else {
			fmt.Println("opinion user: not registered")
		}
		return nil
	},
}

// buildClient assembles the store/transport/auth stack shared by the app and
// the subcommands. onUnauthorized runs in addition to the machine's own soft
// logout; the interactive app uses it to surface a toast.
func buildClient(onUnauthorized func(slot string)) (*session.Store, *auth.Machine, *gazette.Client) {
	store, err := session.Open(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal("failed to open session store", zap.Error(err))
	}

	deviceUUID, err := store.DeviceUUID()
	if err != nil {
		logger.Fatal("failed to resolve device id", zap.Error(err))
	}

	var machine *auth.Machine
	tc, err := transport.New(transport.Options{
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout,
		DeviceUUID:  deviceUUID,
		Logger:      logger,
		Credentials: store,
		OnUnauthorized: func(slot string) {
			switch slot {
			case session.SlotAdminToken:
				if machine != nil {
					machine.Invalidate()
				}
			case session.SlotOpinionToken:
				// A dead opinion token is dropped so the next vote
				// routes back through registration.
				if err := store.Clear(session.SlotOpinionToken); err != nil {
					logger.Warn("failed to clear opinion token", zap.Error(err))
				}
			}
			if onUnauthorized != nil {
				onUnauthorized(slot)
			}
		},
	})
	if err != nil {
		logger.Fatal("failed to build transport", zap.Error(err))
	}

	machine = auth.NewMachine(tc, store, logger)
	return store, machine, gazette.NewClient(tc)
}

func runApp() error {
	var program *tea.Program

	store, machine, api := buildClient(func(slot string) {
		if slot == session.SlotAdminToken && program != nil {
			program.Send(ui.SessionExpired())
		}
	})
	defer store.Close()

	model := ui.NewModel(ui.Deps{
		API:    api,
		Auth:   machine,
		Flow:   opinions.NewFlow(api, store, logger),
		Logger: logger,
	})

	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&flagEnv, "env", "e", "", "Environment (dev or prod)")
	rootCmd.PersistentFlags().StringVarP(&flagBaseURL, "base-url", "u", "", "Backend base URL (overrides environment default)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory for local state (sessions, logs)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main provides the slate terminal window manager.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/slatewm/slate/internal/alerter"
	"github.com/slatewm/slate/internal/commands"
	"github.com/slatewm/slate/internal/config"
	"github.com/slatewm/slate/internal/journal"
	"github.com/slatewm/slate/internal/selftest"
	"github.com/slatewm/slate/internal/tui"
)

// Version is the current slate version.
var Version = "0.3.0"

var (
	flagConfig   string
	flagLogFile  string
	flagJournal  string
	flagSelftest bool
)

var rootCmd = &cobra.Command{
	Use:   "slate",
	Short: "slate - a tiling window manager for the terminal",
	Long: `Slate arranges terminal panes the way a tiling window manager arranges
windows: splits, stacks, tabs, floating panes, workspaces and marks, all
driven by key chords and a terse command language with criteria blocks.`,
	Version: Version,
	RunE:    runSlate,
}

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Compare both dispatchers over a built-in command corpus",
	RunE:  runSelftest,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the slate version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("slate", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.config/slate/slate.toml)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "log file overriding the configuration")
	rootCmd.PersistentFlags().StringVar(&flagJournal, "journal", "", "journal database overriding the configuration")
	rootCmd.PersistentFlags().BoolVar(&flagSelftest, "selftest", true, "capture and compare dispatcher streams")
	rootCmd.AddCommand(selftestCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runSlate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := os.MkdirAll(filepath.Dir(cfg.JournalPath), 0o755); err != nil {
		return fmt.Errorf("mkdir journal dir: %w", err)
	}
	jnl, err := journal.Open(cfg.JournalPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer jnl.Close()

	handle := alerter.NewHandle(cfg.AlertCommand, logger)
	defer handle.Kill()
	notifier := alerter.NewNotifier(cfg.AlertURL)

	session := selftest.NewSession(filepath.Dir(cfg.JournalPath), handle, jnl, notifier, logger)
	if cfg.Selftest {
		session.Enable()
	}

	logger.Printf("slate %s starting, config %s", Version, cfg.Path)

	p := tea.NewProgram(tui.New(cfg, jnl, session, logger), tea.WithAltScreen())
	handle.OnExit(func(err error) {
		p.Send(tui.AlertClosedMsg{Err: err})
	})
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// loadConfig reads the configuration and folds the command-line overrides
// in. A first run without any config file writes the defaults out so the
// user has something to edit.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Path == "" && flagConfig == "" {
		if err := config.Save(cfg); err != nil {
			log.Printf("warn: write default config: %v", err)
		} else if cfg, err = config.Load(""); err != nil {
			return config.Config{}, err
		}
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}
	if flagJournal != "" {
		cfg.JournalPath = flagJournal
	}
	if cmd.Flags().Changed("selftest") {
		cfg.Selftest = flagSelftest
	}
	return cfg, nil
}

// openLogger sends the log to the configured file. The terminal belongs
// to the interface, so stdout is never an option.
func openLogger(path string) (*log.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log.New(f, "", log.LstdFlags), func() { f.Close() }, nil
}

// corpus is the command set the selftest subcommand drives through both
// dispatchers. Every verb appears at least once, criteria and chains
// included.
var corpus = []string{
	"open",
	"split h; open",
	"split v; open",
	"layout stacked",
	"layout tabbed",
	"layout default",
	"focus left",
	"focus right",
	"focus up",
	"focus down",
	"focus parent; focus child",
	"border none; border 1pixel; border normal; border toggle",
	"mark term1",
	`[con_mark="term1"] focus`,
	"floating enable; floating disable; floating toggle",
	"fullscreen",
	"fullscreen",
	"fullscreen global",
	"fullscreen global",
	"resize grow right 5 px or 5 ppt",
	"resize shrink right 5 px or 5 ppt",
	"resize grow down 10 px",
	"resize shrink up",
	"move left",
	"move right 20",
	"move container to workspace 2",
	"workspace 2",
	"workspace next; workspace prev",
	"workspace back_and_forth",
	"move scratchpad",
	"scratchpad show",
	"mode resize; mode default",
	"exec --no-startup-id true",
	"nop ignore this",
	"append_layout /nonexistent/layout.json",
	`[class="nothing-matches-this"] kill`,
	"open; kill",
	"reload",
	"restart",
	"exit",
}

// quietHost swallows mode switches and the lifecycle verbs so the corpus
// can exercise them headless.
type quietHost struct{}

func (quietHost) SwitchMode(name string) error { return nil }
func (quietHost) Reload() error                { return nil }
func (quietHost) Restart() error               { return nil }
func (quietHost) Quit()                        {}

// quietSpawner drops exec lines instead of running them.
type quietSpawner struct{}

func (quietSpawner) Start(command string, detach bool) error { return nil }

func runSelftest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.New(os.Stderr, "", 0)
	if err := os.MkdirAll(filepath.Dir(cfg.JournalPath), 0o755); err != nil {
		return fmt.Errorf("mkdir journal dir: %w", err)
	}
	jnl, err := journal.Open(cfg.JournalPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer jnl.Close()

	session := selftest.NewSession(filepath.Dir(cfg.JournalPath), nil, jnl, nil, logger)
	session.Enable()

	runner := commands.NewRunner(tui.BuildTree(cfg), quietSpawner{}, quietHost{}, logger)
	runner.AutoBackAndForth = cfg.WorkspaceAutoBackAndForth
	legacy := commands.NewLegacyDispatcher(runner)
	table := commands.NewTableDispatcher(runner)

	mismatches := 0
	for _, line := range corpus {
		invs, err := commands.ParseLine(line)
		if err != nil {
			return fmt.Errorf("corpus line %q: %w", line, err)
		}
		runner.SetTap(session.ShadowTap())
		table.Run(invs)
		runner.SetTap(session.LiveTap())
		legacy.Run(invs)
		runner.SetTap(nil)
		if rep := session.Validate(); rep != nil {
			mismatches++
			fmt.Printf("mismatch on %q at frame %d: %s\n", line, rep.FrameIndex, rep.Reason)
			if rep.Path != "" {
				fmt.Printf("  report: %s\n", rep.Path)
			}
		}
	}

	if fails, err := jnl.Failures(5); err == nil && len(fails) > 0 {
		fmt.Printf("last recorded failures:\n")
		for _, f := range fails {
			fmt.Printf("  %s  frame %d  %s\n", f.Time.Format("2006-01-02 15:04:05"), f.FrameIndex, f.Reason)
		}
	}

	if mismatches > 0 {
		return fmt.Errorf("%d of %d corpus lines diverged", mismatches, len(corpus))
	}
	fmt.Printf("dispatchers agree over %d corpus lines\n", len(corpus))
	return nil
}

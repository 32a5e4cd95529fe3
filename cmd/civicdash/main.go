package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/civicdash/pkg/catalog"
	"github.com/vanderheijden86/civicdash/pkg/config"
	"github.com/vanderheijden86/civicdash/pkg/debug"
	"github.com/vanderheijden86/civicdash/pkg/metrics"
	"github.com/vanderheijden86/civicdash/pkg/ui"
	"github.com/vanderheijden86/civicdash/pkg/version"
	"github.com/vanderheijden86/civicdash/pkg/watcher"
)

var errNotTerminal = errors.New("civicdash needs an interactive terminal (try 'civicdash render')")

// rootOptions holds the persistent and root-only flags.
type rootOptions struct {
	configPath  string
	debug       bool
	name        string
	role        string
	watchConfig bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "civicdash",
		Short: "Role-based civic education dashboard",
		Long: `civicdash is a terminal dashboard for learning how citizens, educators,
legal experts and administrators take part in constitutional life.

Run without arguments to open the interactive dashboard. Sign in with a
name and a role; nothing leaves your machine.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/civicdash/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "write a debug log (also CIVICDASH_DEBUG=1)")
	cmd.Flags().StringVar(&opts.name, "name", "", "sign in as this name on start (needs --role)")
	cmd.Flags().StringVar(&opts.role, "role", "", "sign in with this role on start: Admin, Educator, Citizen, LegalExpert")
	cmd.Flags().BoolVar(&opts.watchConfig, "watch-config", false, "re-apply the config file when it changes")

	cmd.AddCommand(
		newRenderCmd(),
		newCatalogCmd(),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig resolves the config path and loads it. A missing file yields
// defaults.
func loadConfig(opts *rootOptions) (config.Config, string, error) {
	path := opts.configPath
	if path == "" {
		path = config.ConfigPath()
	}
	if path == "" {
		return config.DefaultConfig(), "", nil
	}
	cfg, err := config.LoadFrom(path)
	return cfg, path, err
}

// interactive reports whether the dashboard can take over the terminal.
// Tests replace it.
var interactive = func() bool {
	return isTerminal(os.Stdout) && isTerminal(os.Stdin)
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runDashboard(cmd *cobra.Command, opts *rootOptions) error {
	if !interactive() {
		return errNotTerminal
	}

	cfg, path, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if opts.debug || debug.Requested() {
		debug.SetEnabled(true)
		closeLog, err := debug.Open(cfg.LogFile(), cfg.Logging.Level)
		if err != nil {
			return err
		}
		defer closeLog()
		defer logTimings()
	}
	debug.Section("startup")
	debug.Log("civicdash %s, config %s", version.Version, path)

	cat := catalog.Default()
	if err := cat.Validate(); err != nil {
		return err
	}

	m := ui.NewModel(cat, cfg)
	if opts.name != "" || opts.role != "" {
		m, _ = m.Login(opts.name, opts.role)
		if m.CurrentView() != ui.ViewDashboard {
			return fmt.Errorf("sign in: %s", m.LoginError())
		}
	}

	if (opts.watchConfig || cfg.UI.WatchConfig) && path != "" {
		w, err := watcher.NewWatcher(path, watcher.WithOnError(func(err error) {
			debug.Warn("config watcher: %v", err)
		}))
		if err != nil {
			return fmt.Errorf("watching config: %w", err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("watching config: %w", err)
		}
		defer w.Stop()
		m = m.WithConfigWatcher(w, path)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// logTimings writes the render timings collected during the session.
func logTimings() {
	for _, st := range metrics.AllTimingStats() {
		if st.Count == 0 {
			continue
		}
		debug.With("timing",
			"metric", st.Name,
			"count", st.Count,
			"avg_ms", st.AvgMs,
			"max_ms", st.MaxMs,
		)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "civicdash %s\n", version.Version)
		},
	}
}

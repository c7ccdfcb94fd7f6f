package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jask/tripboard/internal/config"
	"github.com/jask/tripboard/internal/database"
	"github.com/jask/tripboard/internal/logging"
	"github.com/jask/tripboard/internal/store"
	"github.com/jask/tripboard/internal/tui"
	"github.com/jask/tripboard/internal/view"
)

// options are the global flags and what they resolve to.
type options struct {
	configPath string
	dbPath     string
	verbose    bool
	cfg        config.Config
	log        *logrus.Entry
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "tripboard",
		Short: "A terminal itinerary editor",
		Long: `Tripboard keeps a trip itinerary in a local SQLite database and lets you
edit it point by point. Each point shows as a row; enter opens its editor
and only one editor is open at a time.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd.Context(), opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/tripboard/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database path, overrides database.path")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level to stderr instead of the log file")

	cmd.AddCommand(newListCmd(opts), newConfigCmd(opts), newResetCmd(opts))
	return cmd
}

func (o *options) load() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	if o.verbose {
		cfg.Log.Level = "debug"
		logging.SetupWriter(cfg.Log, os.Stderr)
	} else if err := logging.Setup(cfg.Log); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	o.cfg = cfg
	o.log = logging.NewLogger("cmd")
	return nil
}

// format builds the display settings, falling back to local time when the
// configured zone cannot be loaded.
func (o *options) format() view.Format {
	loc, err := time.LoadLocation(o.cfg.UI.Timezone)
	if err != nil {
		o.log.WithError(err).WithField("timezone", o.cfg.UI.Timezone).Warn("using local timezone")
		loc = time.Local
	}
	return view.Format{DateLayout: o.cfg.UI.DateFormat, Currency: o.cfg.UI.CurrencySymbol, Location: loc}
}

// openStore prepares the database and loads the itinerary. The returned
// database must be closed by the caller.
func (o *options) openStore(ctx context.Context) (*store.Points, *sql.DB, error) {
	db, err := database.Prepare(ctx, o.cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Load(ctx, store.NewRepos(db), logging.NewLogger("store"))
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return st, db, nil
}

func runBoard(ctx context.Context, o *options) error {
	st, db, err := o.openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	app, err := tui.New(ctx, st, o.format(), logging.NewLogger("tui"))
	if err != nil {
		return err
	}
	o.log.WithField("points", len(st.Points())).Info("starting board")
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}

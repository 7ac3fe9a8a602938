// Package cli wires the cobra command surface around the retrieval pipeline
// and the interactive browser.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/unleaded-cli/unleaded/internal/autodev"
	"github.com/unleaded-cli/unleaded/internal/config"
	"github.com/unleaded-cli/unleaded/internal/engine"
	"github.com/unleaded-cli/unleaded/internal/engine/cache"
	"github.com/unleaded-cli/unleaded/internal/tui"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// searchFlags holds the raw flag values of the root command.
type searchFlags struct {
	zip        string
	brand      string
	model      string
	distance   int
	engine     string
	milesRange string
	priceRange string
	yearRange  string
	noCache    bool
	debug      bool
}

// params converts the flags into the pipeline's search-parameter tuple,
// clamping the search radius to at least one mile.
func (f searchFlags) params() autodev.SearchParams {
	distance := f.distance
	if distance < 1 {
		distance = 1
	}
	return autodev.SearchParams{
		Zip:        f.zip,
		Distance:   distance,
		Engine:     f.engine,
		Brand:      f.brand,
		Model:      f.model,
		MilesRange: f.milesRange,
		PriceRange: f.priceRange,
		YearRange:  f.yearRange,
	}
}

// NewRootCmd creates the root cobra command: fetch listings for the given
// search parameters, then browse them interactively.
func NewRootCmd(ver string) *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:     "unleaded",
		Short:   "Search and browse EV listings in your terminal",
		Long:    "unleaded searches the auto.dev vehicle listings API, caches results locally,\nand opens an interactive filter/sort/page view over them.",
		Version: ver,
		Example: rootCmdExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&flags.zip, "zip", "z", "", "zip code for search location (required)")
	cmd.Flags().StringVarP(&flags.brand, "brand", "b", "", "brand/make name (e.g. Hyundai, Tesla)")
	cmd.Flags().StringVarP(&flags.model, "model", "m", "", "model name (e.g. Ioniq 5), skip to find all models")
	cmd.Flags().IntVarP(&flags.distance, "distance", "d", 50, "search radius in miles")
	cmd.Flags().StringVarP(&flags.engine, "engine", "e", "electric", "engine type")
	cmd.Flags().StringVarP(&flags.milesRange, "milesRange", "M", autodev.DefaultMilesRange, "miles range filter (min-max)")
	cmd.Flags().StringVarP(&flags.priceRange, "priceRange", "P", autodev.DefaultPriceRange, "price range filter (min-max)")
	cmd.Flags().StringVarP(&flags.yearRange, "yearRange", "Y", autodev.DefaultYearRange, "year range filter (min-max)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "bypass the local cache and query the API")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("zip")

	cmd.AddCommand(newCacheCmd())

	return cmd
}

func runBrowse(cmd *cobra.Command, flags searchFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := initLogging(cfg, flags.debug); err != nil {
		return err
	}
	defer config.CloseLogFile()

	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return fmt.Errorf("unleaded needs an interactive terminal")
	}

	store, err := cache.NewStore(cfg.CacheDir)
	if err != nil {
		return err
	}

	params := flags.params()
	if flags.noCache {
		// Dropping the entry turns the cache read into a guaranteed miss;
		// the fetch still writes a fresh snapshot back.
		if err := store.Delete(cache.Key(params)); err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Msg("cache bypass: delete failed")
		}
	}

	client := autodev.NewClient(cfg.APIKey, cfg.BaseURL)
	fetcher := engine.NewFetcher(store, client, config.GetLogger(), cfg.RawDir())

	p := tea.NewProgram(tui.NewModel(), tea.WithAltScreen())

	// One fetch per session. The TUI renders progress concurrently; the
	// hooks are its observable cell.
	go func() {
		listings, fetchErr := fetcher.Fetch(cmd.Context(), params, engine.Hooks{
			OnProgress: func(count int) { p.Send(tui.FetchProgressMsg(count)) },
			OnStatus:   func(message string) { p.Send(tui.FetchStatusMsg(message)) },
		})
		if fetchErr != nil {
			p.Send(tui.FetchErrMsg{Err: fetchErr})
			return
		}
		p.Send(tui.FetchDoneMsg{Listings: listings})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(tui.Model); ok && m.FetchErr() != nil {
		return m.FetchErr()
	}
	return nil
}

// initLogging configures the global logger. Without a log file the logger is
// silenced entirely once the interactive view owns the terminal.
func initLogging(cfg config.Config, debug bool) error {
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	if cfg.LogFile == "" {
		level = "disabled"
	}
	return config.InitLogger(level, cfg.LogFile)
}

const rootCmdExample = `  # All electric vehicles within 50 miles of 94016
  unleaded --zip 94016

  # Certified Hyundai Ioniq 5s within 200 miles, up to $40k
  unleaded -z 94016 -b Hyundai -m "Ioniq 5" -d 200 -P 0-40000

  # Force a fresh API query
  unleaded -z 94016 --no-cache

  # Drop every cached search
  unleaded cache clear`

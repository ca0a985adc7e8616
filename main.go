package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

const consoleChatID = 1

var (
	configPath string
	cfg        Config
	logger     *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "voicerail",
		Short: "Voice-operated railway ticket reservation assistant",
		Long: `voicerail books, modifies, cancels and looks up railway tickets through a
spoken dialog. Tickets live in memory for the lifetime of the process.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = LoadConfig(configPath)
			if err != nil {
				return err
			}
			logger = newLogger(cfg.LogLevel)
			return nil
		},
	}
	consoleCmd = &cobra.Command{
		Use:   "console",
		Short: "Talk to the assistant on this terminal, one line per utterance",
		RunE:  runConsoleCommand,
	}
	telegramCmd = &cobra.Command{
		Use:   "telegram",
		Short: "Serve the assistant as a Telegram bot, one session per chat",
		RunE:  runTelegramCommand,
	}
	stationsCmd = &cobra.Command{
		Use:   "stations [utterance]",
		Short: "List the station catalog, or show which station an utterance resolves to",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStationsCommand,
	}
	inspectCmd = &cobra.Command{
		Use:   "inspect [ticket file]",
		Short: "Print the fields of a downloaded ticket",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspectCommand,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")
	rootCmd.AddCommand(consoleCmd, telegramCmd, stationsCmd, inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println("Error:", err)
		os.Exit(1)
	}
}

// setup opens the store and loads the station catalog shared by every
// transport.
func setup(ctx context.Context) (*Store, []string, error) {
	catalog, err := loadStations(cfg.Stations, cfg.StationsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading stations: %w", err)
	}
	store, err := OpenStore(cfg.Store.SharedTickets, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open store: %w", err)
	}
	serveMetrics(ctx, cfg.MetricsAddr, logger)
	return store, catalog, nil
}

func runConsoleCommand(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	store, catalog, err := setup(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	notifier := &consoleNotifier{
		out:          cmd.OutOrStdout(),
		speaker:      newSpeaker(cfg.Speech),
		downloadsDir: cfg.DownloadsDir,
		logger:       logger,
	}
	dialog := NewDialog(store, catalog, notifier, logger)
	listener := newLineListener(cmd.InOrStdin(), cfg.ListenTimeout)
	defer listener.Close()
	return runConsole(ctx, dialog, listener, consoleChatID, logger)
}

func runTelegramCommand(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	store, catalog, err := setup(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	return runTelegram(ctx, cfg, store, catalog, logger)
}

func runStationsCommand(cmd *cobra.Command, args []string) error {
	catalog, err := loadStations(cfg.Stations, cfg.StationsFile)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, s := range catalog {
			fmt.Fprintln(out, s)
		}
		return nil
	}
	station, ok := ResolveStation(args[0], catalog)
	if !ok {
		return fmt.Errorf("no station matches %q", args[0])
	}
	fmt.Fprintln(out, station)
	return nil
}

func runInspectCommand(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}
	fields := ticketFields(doc)
	if len(fields) == 0 {
		return fmt.Errorf("%s is not a ticket", args[0])
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k, fields[k])
	}
	return nil
}

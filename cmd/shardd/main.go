// Command shardd runs the township shard daemon.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/grimholt/townshard/internal/api"
	"github.com/grimholt/townshard/internal/config"
	"github.com/grimholt/townshard/internal/engine"
	"github.com/grimholt/townshard/internal/persistence"
	"github.com/grimholt/townshard/internal/township"
)

var configPath string

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "shardd",
		Short: "Township shard daemon",
		Long: `shardd runs the township subsystem of the shard: the tick loop that
drives visitor counting, daily fees, and weekly activity evaluation, plus the
read-only operator API.`,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "shardd.yaml", "Path to YAML config file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the shard loop",
		RunE:  runShard,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print townships stored in the world save",
		RunE:  inspectSave,
	}

	rootCmd.AddCommand(runCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runShard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	store, err := persistence.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()
	slog.Info("store opened", "path", cfg.DBPath)

	shard, err := engine.NewShard(cfg, store)
	if err != nil {
		return fmt.Errorf("build shard: %w", err)
	}

	if tickStr, err := store.GetMeta("last_tick"); err == nil && tickStr != "" {
		if t, err := strconv.ParseUint(tickStr, 10, 64); err == nil {
			shard.LastTick = t
		}
	}

	eng := engine.NewEngine()
	eng.Tick = shard.LastTick
	eng.Interval = time.Duration(cfg.TickIntervalMs) * time.Millisecond
	eng.OnTick = shard.TickMinute
	eng.OnDay = shard.TickDay
	eng.OnWeek = shard.TickWeek

	if cfg.APIPort > 0 {
		srv := &api.Server{Shard: shard, Eng: eng, Port: cfg.APIPort}
		srv.Start()
	}

	// Save on shutdown.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		slog.Info("shutdown signal received, saving")
		if err := store.SaveShardState(cfg.SaveRoot, shard.Settings, shard.Townships, int64(eng.Tick)); err != nil {
			slog.Error("final save failed", "err", err)
		}
		eng.Stop()
	}()

	eng.Run()
	return nil
}

func inspectSave(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := persistence.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	snaps, err := store.LoadTownships()
	if err != nil {
		return fmt.Errorf("load townships: %w", err)
	}
	if len(snaps) == 0 {
		fmt.Println("no townships in the world save")
		return nil
	}

	for _, snap := range snaps {
		state := "active"
		if snap.PackedUp {
			state = "packed up"
		}
		fmt.Printf("township %d  guild %d  %s on %s  %s\n",
			snap.Serial, snap.GuildID, snap.Center.String(), snap.Facet, state)
		fmt.Printf("  gold %s  activity %s (actual %s, %d weeks at level)\n",
			humanize.Comma(int64(snap.GoldHeld)),
			township.ActivityName(snap.ActivityLevel),
			township.ActivityName(snap.LastActualActivityLevel),
			snap.WeeksAtLevel)
		for _, entry := range snap.Withdrawals {
			fmt.Printf("  withdrawal %s — %s\n", humanize.Comma(int64(entry.Amount)), entry.Description)
		}
	}
	return nil
}

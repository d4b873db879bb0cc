package main

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/clarktrimble/sabot"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"portal"
	"portal/auth"
	"portal/store/duck"
	"portal/util"
)

var (
	cfgPath string
	dbPath  string
	logPath string
	count   int
)

func main() {

	rootCmd := &cobra.Command{
		Use:   "portal",
		Short: "Admin and brand portal in the terminal",
		Long:  `Sign in as an admin or a brand and browse, search, sort, filter and edit items.`,
		RunE:  runPortal,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "portal.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "duckdb file, in memory when empty (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "log file (overrides config)")

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample config unless one exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.SampleConfig(portal.SampleConfig, cfgPath, 0644)
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo items into the duckdb file and exit",
		Args:  cobra.NoArgs,
		RunE:  runSeed,
	}
	seedCmd.Flags().IntVarP(&count, "count", "n", 0, "number of items (config seed when zero)")

	rootCmd.AddCommand(sampleCmd, seedCmd)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func runPortal(cmd *cobra.Command, args []string) (err error) {

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return
	}

	logFile := util.OpenLog(cfg.LogFile, 0644)
	defer util.CloseLog(logFile)
	lgr := (&sabot.Config{}).New(logFile)

	dk, err := duck.New(cfg.DbPath, cfg.Fields(), lgr)
	if err != nil {
		return
	}
	defer dk.Close()

	if cfg.DbPath == "" && cfg.Seed > 0 {
		err = dk.Seed(ctx, cfg.Seed)
		if err != nil {
			return
		}
	}

	model, err := portal.NewModel(ctx, cfg, dk, auth.Mock{Delay: cfg.LoginDelay}, lgr)
	if err != nil {
		return
	}

	lgr.Info(ctx, "starting portal", "source", dk.Name())
	_, err = tea.NewProgram(model).Run()
	if err != nil {
		lgr.Error(ctx, "portal exited", err)
	}
	return
}

func runSeed(cmd *cobra.Command, args []string) (err error) {

	ctx := context.Background()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return
	}
	if cfg.DbPath == "" {
		return errors.New("seed needs a duckdb file, set db_path or --db")
	}
	if count <= 0 {
		count = cfg.Seed
	}

	logFile := util.OpenLog(cfg.LogFile, 0644)
	defer util.CloseLog(logFile)
	lgr := (&sabot.Config{}).New(logFile)

	dk, err := duck.New(cfg.DbPath, cfg.Fields(), lgr)
	if err != nil {
		return
	}
	defer dk.Close()

	err = dk.Seed(ctx, count)
	if err != nil {
		return
	}

	fmt.Printf("seeded %d items into %s\n", count, dk.Name())
	return
}

// loadConfig reads the config file, falling back to defaults when there is none,
// and applies flag overrides
func loadConfig(cmd *cobra.Command) (cfg portal.Config, err error) {

	cfg, err = portal.LoadConfig(cfgPath)
	if errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		cfg, err = portal.DefaultConfig(), nil
	}
	if err != nil {
		return
	}

	if cmd.Flags().Changed("db") {
		cfg.DbPath = dbPath
	}
	if cmd.Flags().Changed("log") {
		cfg.LogFile = logPath
	}
	return
}

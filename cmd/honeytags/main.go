package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"honeytags/internal/chain"
	"honeytags/internal/config"
	"honeytags/internal/storage"
	"honeytags/internal/storage/postgres"
	"honeytags/internal/subgraph"
	"honeytags/internal/tagger"
)

func main() {
	root := &cobra.Command{
		Use:          "honeytags",
		Short:        "Honeyswap pool tag generator",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch all pairs and export pool tags",
		RunE:  runFetch,
	}

	fetchCmd.Flags().String("api-key", "", "The Graph gateway API key")
	fetchCmd.Flags().String("chain-id", "100", "chain id (only 100 is supported)")
	fetchCmd.Flags().String("endpoint", "", "subgraph endpoint override (default: gateway template)")
	fetchCmd.Flags().String("out", "./data/tags.jsonl", "output file path")
	fetchCmd.Flags().String("format", "jsonl", "output format (jsonl, csv)")
	fetchCmd.Flags().String("pg-dsn", "", "Postgres DSN (writes tags to pool_tags instead of a file)")
	fetchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(fetchCmd)

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Check exported tags against on-chain bytecode",
		RunE:  runVerify,
	}

	verifyCmd.Flags().String("rpc", "", "Gnosis RPC URL")
	verifyCmd.Flags().String("in", "./data/tags.jsonl", "input tags JSONL")
	verifyCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(verifyCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runFetch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = subgraph.DefaultEndpoint
	}
	if cfg.APIKey == "" && strings.Contains(endpoint, "{api-key}") {
		return fmt.Errorf("api key is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service := tagger.NewService(endpoint, logger)

	logger.Info("fetch start",
		zap.String("chain_id", cfg.ChainID),
		zap.String("format", cfg.Format),
		zap.String("out", cfg.Out),
		zap.Bool("postgres", cfg.PgDSN != ""),
	)

	tags, err := service.ReturnTags(ctx, cfg.ChainID, cfg.APIKey)
	if err != nil {
		return err
	}

	if cfg.PgDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PgDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if err := store.UpsertTags(ctx, tags); err != nil {
			return fmt.Errorf("upsert tags: %w", err)
		}
	} else {
		var sink storage.Storage
		switch cfg.Format {
		case "jsonl":
			sink = storage.NewJsonlStorage(cfg.Out)
		case "csv":
			sink = storage.NewCsvStorage(cfg.Out)
		default:
			return fmt.Errorf("unknown format: %s", cfg.Format)
		}

		if err := sink.PutTagBatch(tags); err != nil {
			return fmt.Errorf("write tags: %w", err)
		}
	}

	logger.Info("fetch complete", zap.Int("tags", len(tags)))
	return nil
}

func runVerify(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadVerify(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}

	tags, err := storage.ReadTagFile(cfg.In)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	malformed := 0
	missing := 0
	for _, tag := range tags {
		// Contract addresses are "eip155:<chainId>:<poolAddress>".
		parts := strings.SplitN(tag.ContractAddress, ":", 3)
		if len(parts) != 3 || parts[0] != "eip155" || !common.IsHexAddress(parts[2]) {
			logger.Warn("malformed contract address", zap.String("contract_address", tag.ContractAddress))
			malformed++
			continue
		}

		hasCode, err := chainClient.HasCode(ctx, common.HexToAddress(parts[2]))
		if err != nil {
			return fmt.Errorf("check code for %s: %w", tag.ContractAddress, err)
		}
		if !hasCode {
			logger.Warn("no bytecode at pool address",
				zap.String("contract_address", tag.ContractAddress),
				zap.String("public_name_tag", tag.PublicNameTag),
			)
			missing++
		}
	}

	logger.Info("verify complete",
		zap.Int("tags", len(tags)),
		zap.Int("malformed", malformed),
		zap.Int("missing_code", missing),
	)
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

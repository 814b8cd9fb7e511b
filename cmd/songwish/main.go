package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rdg-stuttgart/songwish-processor/internal/blocklist"
	"github.com/rdg-stuttgart/songwish-processor/internal/config"
	"github.com/rdg-stuttgart/songwish-processor/internal/metadata"
	"github.com/rdg-stuttgart/songwish-processor/internal/report"
	"github.com/rdg-stuttgart/songwish-processor/internal/rules"
	"github.com/rdg-stuttgart/songwish-processor/internal/service"
	"github.com/rdg-stuttgart/songwish-processor/pkg/logger"
)

var (
	inputFlag     string
	outputFlag    string
	blocklistFlag string
	apiKeyFlag    string
	verbose       bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "songwish",
	Short: "Validate song wish submissions and generate the review workbook",
	Long: `songwish validates a batch of song wish requests exported from the
submission form, checks each requested song against the rule set
(artist/title match, lyric video, section length, age rating, blocklist)
and writes a workbook with a reviewer message sheet and a playback
songlist sheet.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		if err := logger.Init(level, cfg.Logging.File); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if inputFlag != "" {
			cfg.Files.Input = inputFlag
		}
		if outputFlag != "" {
			cfg.Files.Output = outputFlag
		}
		if blocklistFlag != "" {
			cfg.Files.Blocklist = blocklistFlag
		}
		if apiKeyFlag != "" {
			cfg.YouTube.APIKey = apiKeyFlag
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		created, err := blocklist.EnsureTemplate(cfg.Files.Blocklist)
		if err != nil {
			return err
		}
		if created {
			logger.Log.Info("created blocklist template", zap.String("path", cfg.Files.Blocklist))
		}

		blocked, err := blocklist.LoadFile(cfg.Files.Blocklist)
		if err != nil {
			return err
		}
		logger.Log.Info("loaded blocklist", zap.Int("entries", blocked.Len()))

		provider, err := metadata.NewYouTubeClient(ctx, cfg.YouTube.APIKey)
		if err != nil {
			return err
		}

		processor := service.NewProcessor(
			provider,
			rules.NewEngine(cfg.Rules.MaxSectionSeconds, blocked),
			report.NewAssembler(cfg.Rules.GuaranteedCount, cfg.Rules.FormURL),
		)

		_, err = processor.Run(ctx, cfg.Files.Input, cfg.Files.Output, cfg.Rules.GuaranteedCount)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputFlag, "input", "i", "", "input form export (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "output workbook (overrides config)")
	rootCmd.PersistentFlags().StringVar(&blocklistFlag, "blocklist", "", "blocked songs file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "YouTube Data API key (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

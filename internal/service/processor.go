// Package service orchestrates one batch run: read submissions, validate
// each song, assemble the report tables and write the output workbook.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rdg-stuttgart/songwish-processor/internal/metadata"
	"github.com/rdg-stuttgart/songwish-processor/internal/models"
	"github.com/rdg-stuttgart/songwish-processor/internal/report"
	"github.com/rdg-stuttgart/songwish-processor/internal/rules"
	"github.com/rdg-stuttgart/songwish-processor/internal/xlsxio"
	"github.com/rdg-stuttgart/songwish-processor/pkg/logger"
)

// Processor runs the validation pipeline over a batch of submissions.
// Submissions are processed one at a time; metadata lookups are serial and
// a failed lookup never aborts the batch.
type Processor struct {
	provider  metadata.Provider
	engine    *rules.Engine
	assembler *report.Assembler
}

// Summary describes one completed run.
type Summary struct {
	Total             int
	PrimaryFailures   int
	SecondaryFailures int
	Guaranteed        int
}

// NewProcessor creates a batch processor.
func NewProcessor(provider metadata.Provider, engine *rules.Engine, assembler *report.Assembler) *Processor {
	return &Processor{
		provider:  provider,
		engine:    engine,
		assembler: assembler,
	}
}

// Run reads submissions from inputPath, validates them and writes the
// two-sheet workbook to outputPath. Only an unreadable input or an
// unwritable output is fatal.
func (p *Processor) Run(ctx context.Context, inputPath, outputPath string, guaranteedCount int) (Summary, error) {
	subs, err := xlsxio.ReadSubmissions(inputPath)
	if err != nil {
		return Summary{}, fmt.Errorf("read submissions: %w", err)
	}
	logger.Log.Info("processing song wishes", zap.Int("count", len(subs)), zap.String("input", inputPath))

	results := p.Process(ctx, subs)

	messages := p.assembler.MessageTable(results)
	songlist := p.assembler.SonglistTable(results)
	if err := xlsxio.WriteWorkbook(outputPath, messages, songlist); err != nil {
		return Summary{}, fmt.Errorf("write workbook: %w", err)
	}
	logger.Log.Info("output saved", zap.String("output", outputPath))

	summary := summarize(results, guaranteedCount)
	logger.Log.Info("run complete",
		zap.Int("total_requests", summary.Total),
		zap.Int("primary_failures", summary.PrimaryFailures),
		zap.Int("secondary_failures", summary.SecondaryFailures),
		zap.Int("guaranteed", summary.Guaranteed),
	)
	return summary, nil
}

// Process validates every submission and returns the per-submission
// verdicts in input order.
func (p *Processor) Process(ctx context.Context, subs []models.Submission) []models.ProcessedSubmission {
	results := make([]models.ProcessedSubmission, 0, len(subs))
	for i, sub := range subs {
		logger.Log.Info("processing request",
			zap.Int("index", i+1),
			zap.Int("total", len(subs)),
			zap.String("submission_id", sub.ID.String()),
		)

		res := models.ProcessedSubmission{
			Submission:     sub,
			PrimaryVerdict: p.validateSong(ctx, sub.Primary),
		}
		if sub.Secondary != nil {
			res.SecondaryVerdict = p.validateSong(ctx, *sub.Secondary)
		}
		results = append(results, res)
	}
	return results
}

// validateSong fetches metadata for the song and runs the rule engine.
// Songs without a URL skip the fetch; the engine rejects them with the
// missing-input reason.
func (p *Processor) validateSong(ctx context.Context, song models.SongRequest) models.Verdict {
	var fetch models.FetchResult
	if song.CleanURL != "" {
		fetch = p.provider.Fetch(ctx, song.CleanURL)
		if fetch.Failed() {
			logger.Log.Warn("metadata fetch failed",
				zap.String("url", song.CleanURL),
				zap.String("error", fetch.ErrorMessage),
			)
		} else if !rules.HasLyricIndicator(fetch.Metadata) {
			logger.Log.Debug("no lyric indicator found, accepting by default",
				zap.String("url", song.CleanURL),
				zap.String("video_title", fetch.Metadata.Title),
			)
		}
	}
	return p.engine.Validate(song, fetch)
}

func summarize(results []models.ProcessedSubmission, guaranteedCount int) Summary {
	s := Summary{Total: len(results)}
	for _, res := range results {
		if !res.PrimaryVerdict.Accepted() {
			s.PrimaryFailures++
		}
		if res.Secondary != nil && !res.SecondaryVerdict.Accepted() {
			s.SecondaryFailures++
		}
	}
	s.Guaranteed = len(results)
	if s.Guaranteed > guaranteedCount {
		s.Guaranteed = guaranteedCount
	}
	return s
}

// Package lister fetches the model catalog and prints the free-tier report.
package lister

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"freemodels/internal/catalog"
	"freemodels/internal/common/fsutil"
	"freemodels/internal/config"
	"freemodels/internal/metrics"
	"freemodels/internal/report"
)

// zlog is an optional structured logger; nil disables logging.
var zlog *zerolog.Logger

// SetLogger installs the logger used for run diagnostics.
func SetLogger(l zerolog.Logger) { zlog = &l }

// Run performs one fetch, filters by cfg.Suffix and writes a line per match to out.
// Any failure is returned unchanged; lines already written stay in out.
func Run(ctx context.Context, cfg config.Config, out io.Writer) error {
	cfg = config.Merge(config.Default(), cfg)
	err := run(ctx, cfg, out)
	if cfg.MetricsFile == "" {
		return err
	}
	if merr := writeMetrics(cfg.MetricsFile); merr != nil {
		if err != nil {
			if zlog != nil {
				zlog.Warn().Err(merr).Str("path", cfg.MetricsFile).Msg("metrics not written")
			}
			return err
		}
		return merr
	}
	return err
}

func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	client := catalog.New(cfg.URL, cfg.Timeout())
	start := time.Now()
	if zlog != nil {
		zlog.Debug().Str("url", client.URL()).Dur("timeout", cfg.Timeout()).Msg("fetch catalog")
	}
	models, err := client.Fetch(ctx)
	if err != nil {
		return err
	}
	matched := report.Filter(models, cfg.Suffix)
	metrics.SetRecords(len(models), len(matched))
	if zlog != nil {
		zlog.Info().Int("listed", len(models)).Int("matched", len(matched)).
			Str("suffix", cfg.Suffix).Dur("dur", time.Since(start)).Msg("catalog fetched")
	}
	_, err = report.Write(out, matched)
	return err
}

func writeMetrics(path string) error {
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return err
	}
	if err := fsutil.EnsureParentDir(path); err != nil {
		return err
	}
	return metrics.WriteTextfile(path)
}

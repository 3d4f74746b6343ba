package pipeline

import (
	"context"
	"fmt"
	"os"

	"lrcsync/internal/config"
	"lrcsync/internal/logger"
	"lrcsync/internal/lyrics"
	"lrcsync/internal/metadata"
	"lrcsync/internal/walker"
	"lrcsync/pkg/utils"
)

type Hooks struct {
	OnFilesFound func(total int)
	OnProgress   func()
}

// Stats summarizes one run over a library.
type Stats struct {
	Total    int // audio files considered
	Written  int // .lrc files written (or would-be writes on dry runs)
	Skipped  int // existing .lrc kept, no --force
	NotFound int // no usable lyrics on the service
	Failed   int // tag read, lookup, or write errors
}

// Run walks the library and resolves lyrics for each audio file in
// turn: read tags, try an exact lookup, fall back to search when
// enabled, write the .lrc sibling. Every failure is per-file; the run
// always continues.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger, hooks Hooks) (Stats, error) {
	var stats Stats

	files, err := collectAudioFiles(cfg, log)
	if err != nil {
		return stats, fmt.Errorf("failed to scan %s: %w", cfg.Root, err)
	}
	stats.Total = len(files)
	log.Debug("Found %d audio files under %s", len(files), cfg.Root)

	if hooks.OnFilesFound != nil {
		hooks.OnFilesFound(len(files))
	}

	resolver := lyrics.NewResolver(lyrics.NewClient(cfg.LrclibURL), lyrics.Options{
		Filter:         lyrics.ParseIgnoreFields(cfg.Ignore),
		SearchFallback: cfg.Search,
		Tolerance:      cfg.Tolerance,
	})

	for _, path := range files {
		select {
		case <-ctx.Done():
			return stats, fmt.Errorf("sync cancelled")
		default:
		}

		processFile(ctx, cfg, log, resolver, path, &stats)

		if hooks.OnProgress != nil {
			hooks.OnProgress()
		}
	}

	log.Info("Done: %d written, %d skipped, %d without lyrics, %d failed (of %d files)",
		stats.Written, stats.Skipped, stats.NotFound, stats.Failed, stats.Total)
	return stats, nil
}

func processFile(ctx context.Context, cfg config.Config, log *logger.Logger, resolver *lyrics.Resolver, path string, stats *Stats) {
	lrcPath := utils.LrcPath(path)
	if !cfg.Force {
		if _, err := os.Stat(lrcPath); err == nil {
			log.Debug("Skipping %s: lrc file already exists", path)
			stats.Skipped++
			return
		}
	}

	info, err := metadata.ReadTrack(path)
	if err != nil {
		log.Warn("Error reading file metadata %s: %v", path, err)
		stats.Failed++
		return
	}

	outcome, err := resolver.Resolve(ctx, lyrics.TrackMeta{
		Track:    info.Title,
		Artist:   info.ArtistName(),
		Album:    info.Album,
		Duration: info.Duration,
	})
	if err != nil {
		log.Warn("Error finding lyrics for %s: %v", path, err)
		stats.Failed++
		return
	}
	if !outcome.Found {
		log.Info("Did not find synced lyrics for %s", path)
		stats.NotFound++
		return
	}

	if outcome.Candidates > 0 {
		target := -1.0
		if info.Duration != nil {
			target = *info.Duration
		}
		log.Info("Matched lyrics (%gs vs actual %gs, %d candidates in tolerance) for %s",
			outcome.MatchedDuration, target, outcome.Candidates, path)
	} else {
		log.Info("Found synced lyrics for %s", path)
	}

	if cfg.DryRun {
		log.Info("Would write %s", lrcPath)
		stats.Written++
		return
	}

	if err := utils.WriteText(lrcPath, outcome.SyncedLyrics); err != nil {
		log.Warn("Error saving lyrics for %s: %v", path, err)
		stats.Failed++
		return
	}
	log.Debug("Wrote %s", lrcPath)
	stats.Written++
}

// collectAudioFiles walks the library up front so progress can report a
// total. Walk errors are logged and do not stop the scan.
func collectAudioFiles(cfg config.Config, log *logger.Logger) ([]string, error) {
	w := &walker.Walker{
		Hidden:     cfg.Hidden,
		IgnoreFile: cfg.IgnoreFile,
	}

	var files []string
	err := w.Walk(cfg.Root, func(path string, walkErr error) {
		if walkErr != nil {
			log.Warn("Error walking %s: %v", path, walkErr)
			return
		}
		if utils.IsAudioFile(path) {
			files = append(files, path)
		}
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

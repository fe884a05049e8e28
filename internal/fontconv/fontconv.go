// Package fontconv plans and runs batch conversion of TTF/OTF font files to
// web formats. The binary transformation itself is delegated to external
// tools; this package only decides what to convert and drives the tools.
package fontconv

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Runner executes an external command. Abstracted so tests can run without
// the conversion tools installed.
type Runner func(ctx context.Context, name string, args ...string) error

// Tool names looked up on PATH, by target format.
const (
	woff2Tool = "woff2_compress"
	woffTool  = "sfnt2woff"
)

// Job is a single planned conversion of one source font to one target format.
type Job struct {
	Source string
	Target string
	Format string
}

// Stats summarizes a conversion run.
type Stats struct {
	Converted int
	Skipped   int
	Failed    int
}

// Plan walks srcDir for .ttf/.otf files and returns the conversions still to
// do. Targets that already exist are skipped unless force is set; skipped
// count is reported alongside the jobs.
func Plan(srcDir string, formats []string, force bool) ([]Job, int, error) {
	for _, f := range formats {
		if f != "woff2" && f != "woff" {
			return nil, 0, fmt.Errorf("unsupported format %q (want woff2 or woff)", f)
		}
	}

	var jobs []Job
	skipped := 0

	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSourceFont(path) {
			return nil
		}

		for _, format := range formats {
			target := strings.TrimSuffix(path, filepath.Ext(path)) + "." + format
			if !force {
				if _, err := os.Stat(target); err == nil {
					skipped++
					continue
				}
			}
			jobs = append(jobs, Job{Source: path, Target: target, Format: format})
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan %s: %w", srcDir, err)
	}

	return jobs, skipped, nil
}

func isSourceFont(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}

// Converter runs planned conversion jobs through an external tool runner.
type Converter struct {
	run    Runner
	logger *slog.Logger
}

// New creates a converter using the given runner.
func New(run Runner, logger *slog.Logger) *Converter {
	return &Converter{run: run, logger: logger}
}

// Convert executes all jobs. Individual failures are logged and counted, not
// fatal: one corrupt font must not stop the rest of the batch.
func (c *Converter) Convert(ctx context.Context, jobs []Job, skipped int) Stats {
	stats := Stats{Skipped: skipped}

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			stats.Failed += len(jobs) - stats.Converted - stats.Failed
			break
		}

		name, args := command(job)
		if err := c.run(ctx, name, args...); err != nil {
			c.logger.Error("font conversion failed",
				slog.String("source", job.Source),
				slog.String("format", job.Format),
				slog.String("error", err.Error()),
			)
			stats.Failed++
			continue
		}

		c.logger.Info("font converted",
			slog.String("source", job.Source),
			slog.String("target", job.Target),
		)
		stats.Converted++
	}

	return stats
}

// command maps a job to its external tool invocation. woff2_compress always
// writes next to the source; sfnt2woff takes an explicit output path.
func command(job Job) (string, []string) {
	if job.Format == "woff2" {
		return woff2Tool, []string{job.Source}
	}
	return woffTool, []string{"-o", job.Target, job.Source}
}

// fontconv batch-converts TTF/OTF fonts to web formats using the external
// woff2_compress and sfnt2woff tools.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/darwin-elegiga/backend-theme/internal/fontconv"
	"github.com/darwin-elegiga/backend-theme/pkg/logger"
)

var (
	srcDir   string
	formats  []string
	force    bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "fontconv",
	Short: "Convert brand fonts to web formats",
	Long: "fontconv scans a directory tree for .ttf and .otf fonts and converts\n" +
		"them to woff2/woff next to the originals. Existing targets are kept\n" +
		"unless --force is given.",
	RunE: runConvert,
}

func init() {
	rootCmd.Flags().StringVar(&srcDir, "src", "static/fonts", "Directory tree to scan for fonts")
	rootCmd.Flags().StringSliceVar(&formats, "formats", []string{"woff2", "woff"}, "Target formats (woff2, woff)")
	rootCmd.Flags().BoolVar(&force, "force", false, "Reconvert even when the target file exists")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := logger.New("fontconv", logLevel)

	jobs, skipped, err := fontconv.Plan(srcDir, formats, force)
	if err != nil {
		return err
	}
	log.Info("conversion planned",
		slog.String("src", srcDir),
		slog.String("formats", strings.Join(formats, ",")),
		slog.Int("jobs", len(jobs)),
		slog.Int("skipped", skipped),
	)

	runner := func(ctx context.Context, name string, toolArgs ...string) error {
		c := exec.CommandContext(ctx, name, toolArgs...)
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	}

	stats := fontconv.New(runner, log).Convert(cmd.Context(), jobs, skipped)
	log.Info("conversion finished",
		slog.Int("converted", stats.Converted),
		slog.Int("skipped", stats.Skipped),
		slog.Int("failed", stats.Failed),
	)

	if stats.Failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", stats.Failed)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

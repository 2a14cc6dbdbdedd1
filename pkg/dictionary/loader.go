package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/bastiangx/phrasebook/internal/utils"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"
)

// maxLineSize bounds a single line of a text phrase list
const maxLineSize = 1024 * 1024

// LoaderStats provides statistics about a glob load
type LoaderStats struct {
	Files      int
	Phrases    int
	Duplicates int
	Elapsed    time.Duration
}

// Load reads every phrase from the file at path.
func Load(path string) ([]string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open phrase file %s: %w", path, err)
	}
	defer file.Close()

	var phrases []string
	switch format {
	case FormatText:
		phrases, err = readText(file)
	case FormatMsgpack:
		phrases, err = readMsgpack(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s phrase file %s: %w", format, path, err)
	}

	log.Debugf("Loaded %d phrases from %s", len(phrases), path)
	return phrases, nil
}

// readText returns the non-blank, non-comment lines of r with trailing
// whitespace trimmed.
func readText(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var phrases []string
	for scanner.Scan() {
		line := strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		phrases = append(phrases, line)
	}
	return phrases, scanner.Err()
}

func readMsgpack(r io.Reader) ([]string, error) {
	var phrases []string
	if err := msgpack.NewDecoder(r).Decode(&phrases); err != nil {
		return nil, err
	}
	return phrases, nil
}

// LoadGlob loads every file matching pattern (doublestar syntax, so "**" is
// allowed). Files are read concurrently; the result follows sorted path
// order with repeated phrases dropped.
func LoadGlob(ctx context.Context, pattern string) ([]string, error) {
	phrases, stats, err := LoadGlobWithStats(ctx, pattern)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d phrases from %d files matching %s (%d duplicates) in %v",
		stats.Phrases, stats.Files, pattern, stats.Duplicates, stats.Elapsed)
	return phrases, nil
}

// LoadGlobWithStats is LoadGlob that also reports what it read.
func LoadGlobWithStats(ctx context.Context, pattern string) ([]string, LoaderStats, error) {
	start := time.Now()

	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, LoaderStats{}, fmt.Errorf("bad phrase file pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, LoaderStats{}, fmt.Errorf("no phrase files match %q", pattern)
	}
	slices.Sort(paths)

	perFile := make([][]string, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			phrases, err := Load(path)
			if err != nil {
				return err
			}
			perFile[i] = phrases
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, LoaderStats{}, err
	}

	total := 0
	for _, phrases := range perFile {
		total += len(phrases)
	}

	seen := utils.NewSeenFilter(total)
	merged := make([]string, 0, total)
	for _, phrases := range perFile {
		for _, phrase := range phrases {
			if seen.ShouldInclude(phrase) {
				merged = append(merged, phrase)
			}
		}
	}

	stats := LoaderStats{
		Files:      len(paths),
		Phrases:    seen.Len(),
		Duplicates: total - len(merged),
		Elapsed:    time.Since(start),
	}
	return merged, stats, nil
}

// Save writes phrases to path in the format its extension names.
func Save(path string, phrases []string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create phrase file %s: %w", path, err)
	}

	switch format {
	case FormatText:
		err = writeText(file, phrases)
	case FormatMsgpack:
		err = msgpack.NewEncoder(file).Encode(phrases)
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write phrase file %s: %w", path, err)
	}

	log.Debugf("Saved %d phrases to %s", len(phrases), path)
	return nil
}

func writeText(w io.Writer, phrases []string) error {
	bw := bufio.NewWriter(w)
	for _, phrase := range phrases {
		if strings.ContainsAny(phrase, "\r\n") {
			return fmt.Errorf("phrase %q spans lines", phrase)
		}
		if _, err := bw.WriteString(phrase + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

package publisher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultDir is where observation files land unless configured otherwise.
const DefaultDir = "data/output"

// TimestampLayout renders UTC times as e.g. 20240102T150405Z.
const TimestampLayout = "20060102T150405Z"

// Writer persists completions as Markdown observation files.
type Writer struct {
	Dir        string
	RenderHTML bool
	Now        func() time.Time
}

// New returns a Writer rooted at dir. The directory is not created until the first Write.
func New(dir string, renderHTML bool) *Writer {
	if dir == "" {
		dir = DefaultDir
	}
	return &Writer{Dir: dir, RenderHTML: renderHTML, Now: time.Now}
}

// Record describes the files produced by a Write.
type Record struct {
	Path      string
	HTMLPath  string
	Timestamp string
}

// Write stores result under <Dir>/<promptName>_observations_<timestamp>.md.
// It is not atomic; a crash mid-write can leave a partial file.
func (w *Writer) Write(promptName, result string) (Record, error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	t := now().UTC()
	stamp := t.Format(TimestampLayout)

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return Record{}, fmt.Errorf("create output dir: %w", err)
	}

	rec := Record{
		Path:      filepath.Join(w.Dir, ObservationFileName(promptName, t)),
		Timestamp: stamp,
	}
	md := FormatObservation(promptName, result, t)

	var html string
	if w.RenderHTML {
		var err error
		if html, err = mdToHTML(md); err != nil {
			return Record{}, fmt.Errorf("render html: %w", err)
		}
	}

	if err := os.WriteFile(rec.Path, []byte(md), 0o644); err != nil {
		return Record{}, fmt.Errorf("write observations: %w", err)
	}

	if w.RenderHTML {
		htmlPath := strings.TrimSuffix(rec.Path, ".md") + ".html"
		if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
			// Either both files exist or neither does.
			_ = os.Remove(rec.Path)
			return Record{}, fmt.Errorf("write html: %w", err)
		}
		rec.HTMLPath = htmlPath
	}
	return rec, nil
}

// ObservationFileName builds the file name for a run of promptName at t.
func ObservationFileName(promptName string, t time.Time) string {
	return fmt.Sprintf("%s_observations_%s.md", promptName, t.UTC().Format(TimestampLayout))
}

// FormatObservation wraps the raw completion in the fixed Markdown header.
func FormatObservation(promptName, result string, t time.Time) string {
	stamp := t.UTC().Format(TimestampLayout)
	return fmt.Sprintf("# AI-Assisted Observations (%s)\n\nGenerated: %s UTC\n\n%s\n", promptName, stamp, result)
}

// Package notes reads dated note files from a local directory and renders
// them as a digest for the agent.
package notes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hemera/pkg/domain/interfaces"
	"github.com/secmon-lab/hemera/pkg/domain/model"
	"github.com/secmon-lab/hemera/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// DefaultCount is the number of notes returned when the caller does not
// ask for a specific window.
const DefaultCount = 5

// EmptyDigest is returned when the directory has no dated notes.
const EmptyDigest = "No notes found."

// maxConcurrentReads bounds how many note files are read at once
const maxConcurrentReads = 4

var datedName = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// reader implements interfaces.NoteSource over a local directory
type reader struct {
	dir string
}

// New creates a note source reading from the given directory. The directory
// does not need to exist yet; a missing directory yields an empty digest.
func New(dir string) interfaces.NoteSource {
	return &reader{dir: dir}
}

// RecentNotes returns the most recent count dated notes, oldest first,
// formatted as "Note {i} ({date})" blocks separated by blank lines.
func (r *reader) RecentNotes(ctx context.Context, count int) (string, error) {
	if count <= 0 {
		count = DefaultCount
	}

	files := r.scan(ctx)
	if len(files) == 0 {
		return EmptyDigest, nil
	}

	if len(files) > count {
		files = files[len(files)-count:]
	}

	// The index is assigned per selected file, so an unreadable file
	// keeps its slot even though its block is dropped.
	blocks := make([]string, len(files))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentReads)
	for i, f := range files {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(f.Path)
			if err != nil {
				logging.From(ctx).Warn("Skipping unreadable note", "path", f.Path, "error", err.Error())
				return nil
			}
			blocks[i] = fmt.Sprintf("Note %d (%s)\n%s", i+1, f.DateKey, strings.TrimSpace(string(data)))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return "", goerr.Wrap(err, "failed to read notes")
	}

	kept := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b != "" {
			kept = append(kept, b)
		}
	}

	return strings.Join(kept, "\n\n"), nil
}

// scan lists dated note files sorted ascending by date key. A missing or
// unreadable directory is treated as empty rather than an error.
func (r *reader) scan(ctx context.Context) []model.NoteFile {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.From(ctx).Warn("Could not read notes directory", "dir", r.dir, "error", err.Error())
		}
		return nil
	}

	var files []model.NoteFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !datedName.MatchString(name) {
			continue
		}
		files = append(files, model.NoteFile{
			Path:    filepath.Join(r.dir, name),
			DateKey: strings.SplitN(name, ".", 2)[0],
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].DateKey < files[j].DateKey })
	return files
}

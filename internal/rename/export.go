package rename

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// ArchiveName is the fixed name of multi-file export artifacts.
const ArchiveName = "renamed.zip"

// Artifact is a named byte buffer ready for a download sink.
type Artifact struct {
	Name string
	Data []byte
}

// Exporter packages transformed file contents into a download artifact.
type Exporter struct {
	logger Logger
}

// NewExporter creates an Exporter.
func NewExporter(logger Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export produces the download artifact for the batch: the file itself for a
// single-file batch, a zip archive otherwise. It never mutates the records
// and may be called repeatedly after one commit.
//
// Entry names are the files' current names verbatim. Two files that
// transformed to the same name overwrite each other in the archive; the
// collision is logged but not resolved.
func (e *Exporter) Export(files []FileRecord) (*Artifact, error) {
	switch len(files) {
	case 0:
		return nil, ErrEmptyExport
	case 1:
		return &Artifact{Name: files[0].CurrentName, Data: files[0].Content}, nil
	}

	// Later files win name collisions, so write only the last occurrence of
	// each name. The zip package would otherwise emit duplicate entries.
	last := make(map[string]int, len(files))
	for i, f := range files {
		if _, dup := last[f.CurrentName]; dup {
			e.logger.Warn("archive entry collision, later file wins", "name", f.CurrentName)
		}
		last[f.CurrentName] = i
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for i, f := range files {
		if last[f.CurrentName] != i {
			continue
		}
		entry, err := w.Create(f.CurrentName)
		if err != nil {
			return nil, fmt.Errorf("creating archive entry %q: %w", f.CurrentName, err)
		}
		if _, err := entry.Write(f.Content); err != nil {
			return nil, fmt.Errorf("writing archive entry %q: %w", f.CurrentName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}

	return &Artifact{Name: ArchiveName, Data: buf.Bytes()}, nil
}

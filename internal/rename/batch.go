package rename

// FileRecord is one file accepted into the batch. Content is held in memory;
// the source file on disk is never touched. CurrentName starts equal to
// OriginalName and is replaced by the transformer on commit.
type FileRecord struct {
	ID           string
	OriginalName string
	CurrentName  string
	Content      []byte
	Size         int64
}

// Batch is the current collection of files awaiting or having undergone
// transformation, plus the export-enabled flag. The batch exclusively owns
// its records; they are not shared across batches.
type Batch struct {
	files       []FileRecord
	exportReady bool
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Add accepts files into the batch. Adding a file disables export until the
// next successful commit.
func (b *Batch) Add(files ...FileRecord) {
	if len(files) == 0 {
		return
	}
	b.files = append(b.files, files...)
	b.exportReady = false
}

// Files returns the records in batch order. The returned slice is a copy;
// record content is shared.
func (b *Batch) Files() []FileRecord {
	out := make([]FileRecord, len(b.files))
	copy(out, b.files)
	return out
}

// Len returns the number of files in the batch.
func (b *Batch) Len() int { return len(b.files) }

// RemoveFile drops the identified file from the batch. Removing an unknown
// id is a no-op. The export flag is left alone: a remove after a commit does
// not revoke the download.
func (b *Batch) RemoveFile(id string) {
	out := b.files[:0]
	for _, f := range b.files {
		if f.ID != id {
			out = append(out, f)
		}
	}
	b.files = out
}

// Clear drops all records and the export flag.
func (b *Batch) Clear() {
	b.files = nil
	b.exportReady = false
}

// ExportReady reports whether a commit has completed since the batch last
// changed shape, making the exporter usable.
func (b *Batch) ExportReady() bool { return b.exportReady }

// replace swaps in the transformed records and enables export. Only the
// commit protocol calls this.
func (b *Batch) replace(files []FileRecord) {
	b.files = files
	b.exportReady = true
}

// restore reloads batch state from a persisted session. The export flag is
// restored as-is.
func (b *Batch) restore(files []FileRecord, exportReady bool) {
	b.files = files
	b.exportReady = exportReady
}

// RestoreBatch rebuilds a batch from persisted session state.
func RestoreBatch(files []FileRecord, exportReady bool) *Batch {
	b := NewBatch()
	b.restore(files, exportReady)
	return b
}

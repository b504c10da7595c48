// Package store persists tasks to a local JSON or YAML file.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/riordanpawley/aurora/internal/domain"
)

// Repository is the task persistence the app and CLI depend on
type Repository interface {
	List(ctx context.Context) ([]domain.Task, error)
	Get(ctx context.Context, id string) (domain.Task, error)
	Upsert(ctx context.Context, t domain.Task) error
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, fn func(domain.Task) (domain.Task, error)) (domain.Task, error)
}

// FileStore keeps every task in a single document file. Writes are
// serialized and replace the file atomically.
type FileStore struct {
	path   string
	format Format
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex
}

var _ Repository = (*FileStore)(nil)

// Option configures a FileStore
type Option func(*FileStore)

// WithLogger sets the store's logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *FileStore) { s.logger = logger }
}

// WithClock overrides the time source used for export timestamps
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) { s.now = now }
}

// WithFormat forces an encoding regardless of the file extension
func WithFormat(f Format) Option {
	return func(s *FileStore) { s.format = f }
}

// NewFileStore opens a store at path. The format comes from the extension
// unless WithFormat is given.
func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.format == "" {
		f, err := FormatFor(path, "")
		if err != nil {
			return nil, &domain.StoreError{Op: "open", Message: path, Err: err}
		}
		s.format = f
	}
	return s, nil
}

// Path returns the backing file
func (s *FileStore) Path() string {
	return s.path
}

// List returns every task, newest first
func (s *FileStore) List(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}
	s.logger.Debug("listed tasks", "count", len(doc.Tasks))
	return domain.SortNewestFirst(doc.Tasks), nil
}

// Get returns the task with id
func (s *FileStore) Get(ctx context.Context, id string) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, &domain.StoreError{Op: "get", TaskID: id, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return domain.Task{}, &domain.StoreError{Op: "get", TaskID: id, Err: err}
	}
	i := indexOf(doc.Tasks, id)
	if i < 0 {
		return domain.Task{}, &domain.StoreError{Op: "get", TaskID: id, Err: domain.ErrNotFound}
	}
	return doc.Tasks[i], nil
}

// Upsert inserts t or replaces the task with the same ID
func (s *FileStore) Upsert(ctx context.Context, t domain.Task) error {
	if t.ID == "" {
		return &domain.StoreError{Op: "upsert", Message: "task has no id", Err: domain.ErrInvalidTask}
	}
	if err := ctx.Err(); err != nil {
		return &domain.StoreError{Op: "upsert", TaskID: t.ID, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return &domain.StoreError{Op: "upsert", TaskID: t.ID, Err: err}
	}
	doc.Tasks = upsert(doc.Tasks, t)
	if err := s.save(doc); err != nil {
		return &domain.StoreError{Op: "upsert", TaskID: t.ID, Err: err}
	}
	s.logger.Debug("task saved", "task_id", t.ID)
	return nil
}

// Update applies fn to the stored task under the write lock and saves the
// result, so a read-modify-write such as completion happens exactly once.
func (s *FileStore) Update(ctx context.Context, id string, fn func(domain.Task) (domain.Task, error)) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, &domain.StoreError{Op: "update", TaskID: id, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return domain.Task{}, &domain.StoreError{Op: "update", TaskID: id, Err: err}
	}
	i := indexOf(doc.Tasks, id)
	if i < 0 {
		return domain.Task{}, &domain.StoreError{Op: "update", TaskID: id, Err: domain.ErrNotFound}
	}

	updated, err := fn(doc.Tasks[i])
	if err != nil {
		return domain.Task{}, &domain.StoreError{Op: "update", TaskID: id, Err: err}
	}
	updated.ID = id
	doc.Tasks[i] = updated

	if err := s.save(doc); err != nil {
		return domain.Task{}, &domain.StoreError{Op: "update", TaskID: id, Err: err}
	}
	s.logger.Debug("task updated", "task_id", id)
	return updated, nil
}

// Delete removes the task with id
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return &domain.StoreError{Op: "delete", TaskID: id, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return &domain.StoreError{Op: "delete", TaskID: id, Err: err}
	}
	i := indexOf(doc.Tasks, id)
	if i < 0 {
		return &domain.StoreError{Op: "delete", TaskID: id, Err: domain.ErrNotFound}
	}
	doc.Tasks = append(doc.Tasks[:i], doc.Tasks[i+1:]...)
	if err := s.save(doc); err != nil {
		return &domain.StoreError{Op: "delete", TaskID: id, Err: err}
	}
	s.logger.Info("task deleted", "task_id", id)
	return nil
}

// Seed writes tasks only when the store is empty and reports whether it did
func (s *FileStore) Seed(ctx context.Context, tasks []domain.Task) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, &domain.StoreError{Op: "seed", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, &domain.StoreError{Op: "seed", Err: err}
	}
	if len(doc.Tasks) > 0 {
		return false, nil
	}
	doc.Tasks = append(doc.Tasks, tasks...)
	if err := s.save(doc); err != nil {
		return false, &domain.StoreError{Op: "seed", Err: err}
	}
	s.logger.Info("seeded sample tasks", "count", len(tasks))
	return true, nil
}

// Export writes a backup document of every task to w
func (s *FileStore) Export(ctx context.Context, w io.Writer, f Format, prefs *Prefs) error {
	tasks, err := s.List(ctx)
	if err != nil {
		return err
	}
	doc := Document{
		Version:    DocumentVersion,
		ExportedAt: s.now().UTC(),
		Tasks:      tasks,
		Prefs:      prefs,
	}
	if err := Encode(w, f, doc); err != nil {
		return &domain.StoreError{Op: "export", Err: err}
	}
	s.logger.Info("exported tasks", "count", len(tasks), "format", f)
	return nil
}

// ImportResult summarizes an import
type ImportResult struct {
	Imported int
	Skipped  int
	Prefs    *Prefs
}

// Import upserts every valid task from a backup document. Tasks that fail
// validation after normalization are skipped and counted.
func (s *FileStore) Import(ctx context.Context, r io.Reader, f Format) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, &domain.StoreError{Op: "import", Err: err}
	}
	in, err := Decode(data, f)
	if err != nil {
		return ImportResult{}, &domain.StoreError{Op: "import", Message: "failed to decode backup", Err: err}
	}
	if in.Version > DocumentVersion {
		return ImportResult{}, &domain.StoreError{Op: "import", Message: fmt.Sprintf("backup version %d is newer than supported version %d", in.Version, DocumentVersion)}
	}
	if err := ctx.Err(); err != nil {
		return ImportResult{}, &domain.StoreError{Op: "import", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return ImportResult{}, &domain.StoreError{Op: "import", Err: err}
	}

	res := ImportResult{Prefs: in.Prefs}
	for _, t := range in.Tasks {
		n := domain.Normalize(t)
		if n.ID == "" {
			n.ID = domain.NewID()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = s.now()
		}
		if err := domain.Validate(n); err != nil {
			s.logger.Warn("skipping invalid task", "task_id", t.ID, "error", err)
			res.Skipped++
			continue
		}
		doc.Tasks = upsert(doc.Tasks, n)
		res.Imported++
	}

	if res.Imported > 0 {
		if err := s.save(doc); err != nil {
			return ImportResult{}, &domain.StoreError{Op: "import", Err: err}
		}
	}
	s.logger.Info("imported tasks", "imported", res.Imported, "skipped", res.Skipped)
	return res, nil
}

// load reads the document; a missing file is an empty store
func (s *FileStore) load() (Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{Version: DocumentVersion}, nil
	}
	if err != nil {
		return Document{}, err
	}
	doc, err := Decode(data, s.format)
	if err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return doc, nil
}

// save writes doc to a temp file beside the target and renames it over
func (s *FileStore) save(doc Document) error {
	doc.Version = DocumentVersion
	doc.ExportedAt = s.now().UTC()

	var buf bytes.Buffer
	if err := Encode(&buf, s.format, doc); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func indexOf(tasks []domain.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func upsert(tasks []domain.Task, t domain.Task) []domain.Task {
	if i := indexOf(tasks, t.ID); i >= 0 {
		tasks[i] = t
		return tasks
	}
	return append(tasks, t)
}

package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path"

	"go.uber.org/zap"

	"github.com/san-kum/radwaste/internal/dataset"
)

// Store reads the dashboard's input tables from a data directory. Every read
// goes to the underlying filesystem; nothing is cached between calls.
type Store struct {
	fsys   fs.FS
	logger *zap.Logger
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(fsys fs.FS, opts ...Option) *Store {
	s := &Store{fsys: fsys, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns a Store rooted at dir on the local disk.
func Open(dir string, opts ...Option) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, dataset.Unavailable(dir, err)
	}
	if !info.IsDir() {
		return nil, dataset.Unavailable(dir, fmt.Errorf("not a directory"))
	}
	return New(os.DirFS(dir), opts...), nil
}

// ReadTable loads and decodes the named CSV table. Any failure is reported
// as a *dataset.DataError.
func (s *Store) ReadTable(name string) (*dataset.Table, error) {
	name = path.Clean(name)
	f, err := s.fsys.Open(name)
	if err != nil {
		s.logger.Debug("table unavailable", zap.String("path", name), zap.Error(err))
		return nil, dataset.Unavailable(name, err)
	}
	defer f.Close()

	t, err := dataset.Decode(f)
	if err != nil {
		s.logger.Debug("table malformed", zap.String("path", name), zap.Error(err))
		return nil, dataset.Unavailable(name, err)
	}

	s.logger.Debug("table loaded",
		zap.String("path", name),
		zap.Int("rows", t.Rows()),
		zap.Int("cols", t.Cols()),
	)
	return t, nil
}

// Stat reports whether the named file exists and is a regular file.
func (s *Store) Stat(name string) error {
	info, err := fs.Stat(s.fsys, path.Clean(name))
	if err != nil {
		return dataset.Unavailable(name, err)
	}
	if !info.Mode().IsRegular() {
		return dataset.Unavailable(name, fmt.Errorf("not a regular file"))
	}
	return nil
}

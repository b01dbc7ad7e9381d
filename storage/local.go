// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pion/logging"

	ilog "github.com/ik5/onda/internal/logging"
)

// Local stores objects as files below Root. Locators are slash-separated
// paths relative to Root.
type Local struct {
	Root string

	log logging.LeveledLogger
}

// LocalOption configures a Local backend.
type LocalOption func(*Local)

// WithLoggerFactory sets the factory used for the backend's logger.
func WithLoggerFactory(f logging.LoggerFactory) LocalOption {
	return func(l *Local) {
		l.log = ilog.Factory(f).NewLogger("storage")
	}
}

func NewLocal(root string, opts ...LocalOption) *Local {
	l := &Local{
		Root: root,
		log:  ilog.NewLogger("storage"),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *Local) path(locator string) (string, error) {
	p := filepath.FromSlash(locator)
	if !filepath.IsLocal(p) {
		return "", fmt.Errorf("%w: %q", ErrLocator, locator)
	}

	return filepath.Join(l.Root, p), nil
}

func notFound(locator string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, locator)
	}

	return err
}

func (l *Local) Read(locator string) ([]byte, error) {
	p, err := l.path(locator)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(p)
	if err != nil {
		return nil, notFound(locator, err)
	}

	return b, nil
}

func (l *Local) ReadByteRange(locator string, offset, count int64) ([]byte, error) {
	if offset < 0 || count < 0 {
		return nil, fmt.Errorf("%w: byte offset %d, count %d", ErrRange, offset, count)
	}

	file, err := l.open(locator)
	if err != nil {
		return nil, err
	}
	defer file.Close() //nolint:errcheck

	st, err := file.Stat()
	if err != nil {
		return nil, err
	}

	end := min(saturatingEnd(offset, count), st.Size())
	if offset >= end {
		return []byte{}, nil
	}
	l.log.Tracef("reading %s bytes [%d, %d)", locator, offset, end)

	b := make([]byte, end-offset)
	if _, err := io.ReadFull(io.NewSectionReader(file, offset, end-offset), b); err != nil {
		return nil, err
	}

	return b, nil
}

// Write replaces the object at locator, creating parent directories. The
// previous file is kept if the write fails.
func (l *Local) Write(locator string, b []byte) error {
	w, err := l.create(locator)
	if err != nil {
		return err
	}
	l.log.Debugf("writing %d bytes to %s", len(b), locator)

	if _, err := w.Write(b); err != nil {
		return errors.Join(err, w.Abort())
	}

	return w.Close()
}

func (l *Local) OpenReader(locator string) (io.ReadCloser, error) {
	return l.open(locator)
}

func (l *Local) open(locator string) (*os.File, error) {
	p, err := l.path(locator)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, notFound(locator, err)
	}

	return f, nil
}

// OpenWriter writes to a temporary file next to the target and renames it
// over the target on Close.
func (l *Local) OpenWriter(locator string) (Writer, error) {
	w, err := l.create(locator)
	if err != nil {
		return nil, err
	}
	l.log.Debugf("streaming to %s", locator)

	return w, nil
}

func (l *Local) create(locator string) (*localWriter, error) {
	p, err := l.path(locator)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(p)+".*.tmp")
	if err != nil {
		return nil, err
	}

	return &localWriter{File: f, target: p, log: l.log}, nil
}

type localWriter struct {
	*os.File

	target string
	done   bool
	log    logging.LeveledLogger
}

func (w *localWriter) Close() error {
	if w.done {
		return nil
	}
	w.done = true

	tmp := w.Name()
	err := w.File.Chmod(0o644)
	err = errors.Join(err, w.File.Close())
	if err == nil {
		err = os.Rename(tmp, w.target)
	}
	if err != nil {
		return errors.Join(err, removeTemp(tmp))
	}

	return nil
}

func (w *localWriter) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	w.log.Debugf("discarding partial write to %s", w.target)

	return errors.Join(w.File.Close(), removeTemp(w.Name()))
}

func removeTemp(name string) error {
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"sync"
)

// Memory is an in-process backend. Stored bytes are copied on write and on
// read.
type Memory struct {
	objects map[string][]byte

	mtx *sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string][]byte),
		mtx:     &sync.RWMutex{},
	}
}

func (m *Memory) get(locator string) ([]byte, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	b, ok := m.objects[locator]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, locator)
	}

	return b, nil
}

func (m *Memory) Read(locator string) ([]byte, error) {
	b, err := m.get(locator)
	if err != nil {
		return nil, err
	}

	return slices.Clone(b), nil
}

func (m *Memory) ReadByteRange(locator string, offset, count int64) ([]byte, error) {
	if offset < 0 || count < 0 {
		return nil, fmt.Errorf("%w: byte offset %d, count %d", ErrRange, offset, count)
	}

	b, err := m.get(locator)
	if err != nil {
		return nil, err
	}

	return slices.Clone(clampRange(b, offset, count)), nil
}

func (m *Memory) Write(locator string, b []byte) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.objects[locator] = slices.Clone(b)

	return nil
}

func (m *Memory) OpenReader(locator string) (io.ReadCloser, error) {
	b, err := m.get(locator)
	if err != nil {
		return nil, err
	}

	return io.NopCloser(bytes.NewReader(b)), nil
}

// OpenWriter buffers writes and stores the object on Close.
func (m *Memory) OpenWriter(locator string) (Writer, error) {
	return &memoryWriter{m: m, locator: locator}, nil
}

// Locators returns the stored locators in sorted order.
func (m *Memory) Locators() []string {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	out := make([]string, 0, len(m.objects))
	for k := range m.objects {
		out = append(out, k)
	}
	slices.Sort(out)

	return out
}

type memoryWriter struct {
	bytes.Buffer

	m       *Memory
	locator string
	done    bool
}

func (w *memoryWriter) Close() error {
	if w.done {
		return nil
	}
	w.done = true

	return w.m.Write(w.locator, w.Bytes())
}

func (w *memoryWriter) Abort() error {
	w.done = true
	w.Reset()

	return nil
}

// File: lixenwraith/ini/io.go
package ini

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxLineSize is the longest line a ReaderSource accepts.
const MaxLineSize = 1 << 20

// SliceSource supplies lines from a slice.
type SliceSource struct {
	lines []string
	pos   int
}

// NewSliceSource creates a source over lines.
func NewSliceSource(lines []string) *SliceSource {
	return &SliceSource{lines: lines}
}

// NextLine returns the next line of the slice.
func (s *SliceSource) NextLine() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.pos]
	s.pos++
	return line, true
}

// ReaderSource supplies the lines of an io.Reader.
// Both "\n" and "\r\n" terminators are removed.
type ReaderSource struct {
	scanner *bufio.Scanner
}

// NewReaderSource creates a source reading from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineSize)
	return &ReaderSource{scanner: scanner}
}

// NextLine returns the next line, or false at end of input or on a read error.
func (s *ReaderSource) NextLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}

// Err returns the read error that ended the input, if any.
func (s *ReaderSource) Err() error {
	return s.scanner.Err()
}

// WriterSink buffers tokens for an io.Writer. Call Flush when done.
type WriterSink struct {
	w *bufio.Writer
}

// NewWriterSink creates a sink writing to w. A nil writer gives a sink that
// is not open.
func NewWriterSink(w io.Writer) *WriterSink {
	if w == nil {
		return &WriterSink{}
	}
	return &WriterSink{w: bufio.NewWriter(w)}
}

// Opened reports whether the sink has a writer.
func (s *WriterSink) Opened() bool {
	return s.w != nil
}

// WriteToken buffers text.
func (s *WriterSink) WriteToken(text string) error {
	_, err := s.w.WriteString(text)
	return err
}

// Flush writes buffered tokens to the underlying writer.
func (s *WriterSink) Flush() error {
	if s.w == nil {
		return ErrSinkNotOpen
	}
	return s.w.Flush()
}

// BufferSink collects tokens in memory.
type BufferSink struct {
	buf    bytes.Buffer
	Closed bool // a closed sink reports not open
}

// Opened reports whether the sink accepts tokens.
func (s *BufferSink) Opened() bool {
	return !s.Closed
}

// WriteToken appends text.
func (s *BufferSink) WriteToken(text string) error {
	_, err := s.buf.WriteString(text)
	return err
}

// String returns everything written so far.
func (s *BufferSink) String() string {
	return s.buf.String()
}

// Lines splits the output into lines without terminators.
func (s *BufferSink) Lines() []string {
	out := strings.TrimSuffix(s.buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Load parses a document from r.
func Load(r io.Reader) (*Document, error) {
	src := NewReaderSource(r)
	doc := Parse(src)
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return doc, nil
}

// LoadString parses a document from text.
func LoadString(text string) (*Document, error) {
	return Load(strings.NewReader(text))
}

// LoadFile parses the file at path. A missing file yields ErrFileNotFound.
func LoadFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open config file '%s': %w", path, err)
	}
	defer file.Close()

	doc, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", path, err)
	}
	return doc, nil
}

// Bytes returns the document as written by Save.
func (d *Document) Bytes(opts SaveOptions) []byte {
	var sink BufferSink
	// An in-memory sink is always open and never fails
	_ = d.Save(&sink, opts)
	return sink.buf.Bytes()
}

// String returns the document text with default options.
func (d *Document) String() string {
	return string(d.Bytes(DefaultSaveOptions()))
}

// WriteTo writes the document text with default options to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.Bytes(DefaultSaveOptions()))
	return int64(n), err
}

// SaveFile writes the document to path atomically: the text goes to a
// temporary file in the same directory which then replaces path.
func (d *Document) SaveFile(path string, opts SaveOptions) error {
	return atomicWriteFile(path, d.Bytes(opts))
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temporary file: %w", ErrSinkNotOpen, err)
	}

	tempPath := tempFile.Name()
	removed := false
	defer func() {
		if !removed {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file '%s': %w", tempPath, err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file '%s': %w", tempPath, err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file '%s': %w", tempPath, err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file '%s' to '%s': %w", tempPath, path, err)
	}
	removed = true

	return nil
}

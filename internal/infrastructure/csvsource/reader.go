package csvsource

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Reader reads a header-mapped CSV source. It strips a UTF-8 BOM, rejects
// non-UTF-8 content, and tolerates rows with fewer fields than headers.
type Reader struct {
	delimiter rune
	headers   []string
	headerIdx map[string]int
	line      int
	csv       *csv.Reader
}

// Option configures a Reader.
type Option func(*Reader)

// WithDelimiter sets the field delimiter (default comma).
func WithDelimiter(d rune) Option {
	return func(r *Reader) { r.delimiter = d }
}

// New creates a Reader and consumes the header row.
func New(src io.Reader, opts ...Option) (*Reader, error) {
	r := &Reader{
		delimiter: ',',
		headerIdx: make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}

	buf := bufio.NewReader(src)
	if err := stripBOM(buf); err != nil {
		return nil, err
	}
	if err := checkUTF8(buf); err != nil {
		return nil, err
	}

	r.csv = csv.NewReader(buf)
	r.csv.Comma = r.delimiter
	r.csv.LazyQuotes = true
	r.csv.TrimLeadingSpace = true
	r.csv.FieldsPerRecord = -1

	if err := r.readHeader(); err != nil {
		return nil, err
	}
	return r, nil
}

// Open creates a Reader over a file on disk.
func Open(path string, opts ...Option) (*Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv source: %w", err)
	}
	r, err := New(f, opts...)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return r, f.Close, nil
}

func stripBOM(buf *bufio.Reader) error {
	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read csv source: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}
	return nil
}

func checkUTF8(buf *bufio.Reader) error {
	const probe = 4096
	head, err := buf.Peek(probe)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read csv source: %w", err)
	}
	if len(head) == 0 {
		return ErrEmptyFile
	}
	// A multi-byte rune can be cut at the probe boundary; trim the tail
	// before validating.
	for len(head) > 0 && len(head) == probe {
		r, _ := utf8.DecodeLastRune(head)
		if r != utf8.RuneError {
			break
		}
		head = head[:len(head)-1]
	}
	if !utf8.Valid(head) {
		return ErrInvalidEncoding
	}
	return nil
}

func (r *Reader) readHeader() error {
	record, err := r.csv.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}
	r.headers = make([]string, len(record))
	for i, h := range record {
		h = strings.TrimSpace(h)
		r.headers[i] = h
		r.headerIdx[h] = i
	}
	r.line = 1
	return nil
}

// Headers returns the header names in file order.
func (r *Reader) Headers() []string {
	return r.headers
}

// RequireHeaders returns an error naming any missing required headers.
func (r *Reader) RequireHeaders(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := r.headerIdx[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// Row is one parsed CSV record keyed by header name.
type Row struct {
	Line   int
	Fields map[string]string
}

// Get returns the value for a column, empty if absent.
func (row *Row) Get(name string) string {
	return row.Fields[name]
}

// IsEmpty reports whether every field in the row is empty.
func (row *Row) IsEmpty() bool {
	for _, v := range row.Fields {
		if v != "" {
			return false
		}
	}
	return true
}

// Read returns the next data row, io.EOF at end of input.
func (r *Reader) Read() (*Row, error) {
	record, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	r.line++
	if err != nil {
		return nil, fmt.Errorf("csv line %d: %w", r.line, err)
	}

	row := &Row{
		Line:   r.line,
		Fields: make(map[string]string, len(r.headers)),
	}
	for i, h := range r.headers {
		if i < len(record) {
			row.Fields[h] = strings.TrimSpace(record[i])
		} else {
			row.Fields[h] = ""
		}
	}
	return row, nil
}

// ReadAll returns all remaining non-empty data rows.
func (r *Reader) ReadAll() ([]*Row, error) {
	var rows []*Row
	for {
		row, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
}

// FromBytes creates a Reader over an in-memory CSV document.
func FromBytes(data []byte, opts ...Option) (*Reader, error) {
	return New(bytes.NewReader(data), opts...)
}

package cookielog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yankh764/cookies-analyzer/internal/model"
)

const separator = ","

// maxLineBytes caps a single log line. Cookie identifiers are opaque
// strings, so allow well beyond the scanner's 64 KiB default; a line
// past the cap is reported as a parse failure with its line number.
const maxLineBytes = 1 << 20

// Recognized column names. The header row must contain both, in any order.
const (
	CookieHeader    = "cookie"
	TimestampHeader = "timestamp"
)

var (
	ErrUnsupportedHeader = errors.New("unsupported header")
	ErrMissingColumn     = errors.New("missing required column")

	errFieldCount  = errors.New("inconsistent column count")
	errEmptyCookie = errors.New("cookie is not correctly formatted")
)

// ParseError describes a data row that could not be parsed.
type ParseError struct {
	Line int    // 1-based line number in the input
	Raw  string // offending line content
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error { return e.Err }

// fieldParser fills one column's slot on a CookieLog from its raw value.
type fieldParser func(value string, rec *model.CookieLog) error

// Reader reads cookie log records from a two-column CSV stream.
// NewReader consumes and validates the header row, resolving a parser
// per column; each Next call then returns one parsed record.
type Reader struct {
	scanner *bufio.Scanner
	parsers []fieldParser
	line    int
}

// NewReader wraps r and resolves the column parsers from the header row.
// A column name without a parser is ErrUnsupportedHeader; a header row
// lacking a recognized column is ErrMissingColumn.
func NewReader(r io.Reader) (*Reader, error) {
	cr := &Reader{scanner: bufio.NewScanner(r)}
	cr.scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	if err := cr.resolveParsers(); err != nil {
		return nil, err
	}
	return cr, nil
}

func (r *Reader) resolveParsers() error {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return err
		}
		return fmt.Errorf("%w: empty input", ErrMissingColumn)
	}
	r.line++

	var hasCookie, hasTimestamp bool
	for _, name := range splitFields(r.scanner.Text()) {
		switch name {
		case CookieHeader:
			hasCookie = true
			r.parsers = append(r.parsers, parseCookie)
		case TimestampHeader:
			hasTimestamp = true
			r.parsers = append(r.parsers, parseTimestamp)
		default:
			return fmt.Errorf("%w: %q", ErrUnsupportedHeader, name)
		}
	}
	if !hasCookie {
		return fmt.Errorf("%w: %q", ErrMissingColumn, CookieHeader)
	}
	if !hasTimestamp {
		return fmt.Errorf("%w: %q", ErrMissingColumn, TimestampHeader)
	}
	return nil
}

// Next returns the next record. io.EOF signals clean end of input;
// any malformed row is a *ParseError carrying its line number.
func (r *Reader) Next() (model.CookieLog, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return model.CookieLog{}, &ParseError{Line: r.line + 1, Err: err}
			}
			return model.CookieLog{}, err
		}
		return model.CookieLog{}, io.EOF
	}
	r.line++

	raw := r.scanner.Text()
	fields := splitFields(raw)
	if len(fields) != len(r.parsers) {
		return model.CookieLog{}, &ParseError{Line: r.line, Raw: raw, Err: errFieldCount}
	}

	var rec model.CookieLog
	for i, parse := range r.parsers {
		if err := parse(fields[i], &rec); err != nil {
			return model.CookieLog{}, &ParseError{Line: r.line, Raw: raw, Err: err}
		}
	}
	return rec, nil
}

// Line returns the number of the most recently read line.
func (r *Reader) Line() int {
	return r.line
}

// splitFields splits a CSV line and trims whitespace around each field.
func splitFields(line string) []string {
	fields := strings.Split(line, separator)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

func parseCookie(value string, rec *model.CookieLog) error {
	if value == "" {
		return errEmptyCookie
	}
	rec.Cookie = value
	return nil
}

// parseTimestamp requires RFC 3339, so a timestamp without an explicit
// offset is rejected rather than assigned a default one.
func parseTimestamp(value string, rec *model.CookieLog) error {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("timestamp is not correctly formatted: %q", value)
	}
	rec.Timestamp = ts
	return nil
}

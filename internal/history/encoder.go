package history

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lox/matchsim/internal/fileutil"
	"github.com/lox/matchsim/tennis"
)

// Extension of saved match files.
const Extension = ".toml"

// Encode writes the record to w as TOML.
func Encode(w io.Writer, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("history: record is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(rec)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(rec *Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a record previously written by Encode.
func Decode(r io.Reader) (*Record, error) {
	var rec Record
	if _, err := toml.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("history: decode: %w", err)
	}
	return &rec, nil
}

// Save writes the record to dir/<id>.toml and returns the path.
func Save(dir string, rec *Record) (string, error) {
	if rec == nil || rec.ID == "" {
		return "", fmt.Errorf("history: record needs an id")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("history: %w", err)
	}
	path := filepath.Join(dir, rec.ID+Extension)
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Encode(w, rec)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a saved record.
func Load(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// FormatPoint renders a point as "<winner> <ending> <exchanges>", e.g.
// "B rally_miss 3".
func FormatPoint(p tennis.Point) string {
	return fmt.Sprintf("%s %s %d", p.Winner, p.Ending, p.Exchanges)
}

// ParsePoint is the inverse of FormatPoint. The server is not encoded, it
// comes from the enclosing GameRecord.
func ParsePoint(s string, server tennis.Side) (tennis.Point, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return tennis.Point{}, fmt.Errorf("history: malformed point %q", s)
	}

	p := tennis.Point{Server: server}
	if err := p.Winner.UnmarshalText([]byte(fields[0])); err != nil {
		return tennis.Point{}, fmt.Errorf("history: point %q: %w", s, err)
	}
	if err := p.Ending.UnmarshalText([]byte(fields[1])); err != nil {
		return tennis.Point{}, fmt.Errorf("history: point %q: %w", s, err)
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil || n < 0 {
		return tennis.Point{}, fmt.Errorf("history: point %q: bad exchange count", s)
	}
	p.Exchanges = n
	return p, nil
}

// Package archive reads shot-tracking zip archives: it lists the
// data/<seq>.json entries, orders them by their numeric filename
// sequence, and yields one decoded document at a time.
package archive

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pable/go-shot-metrics/internal/model"
)

// entryPattern matches data/<name>.json; <name> must then parse as an
// underscore-joined integer tuple. Anything else in the archive
// (manifests, directories, other prefixes) is skipped silently.
var entryPattern = regexp.MustCompile(`^data/(.+)\.json$`)

type entry struct {
	name string // logical name, e.g. "1_2_3"
	path string // full path inside the zip
	key  []int
}

// Reader yields the archive's documents in ascending sequence order.
// Entries are decoded one at a time; each archive is read exactly once.
type Reader struct {
	zr      *zip.ReadCloser
	entries []entry
	pos     int
	hash    string
}

// Open opens the archive at path, hashes the file for an idempotency
// key, and resolves the ordered entry list. A matching entry whose
// sequence contains a non-numeric segment is a fatal error.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	h := sha256.New()
	_, err = io.Copy(h, f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("hash archive: %w", err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	entries, err := sortedEntries(zr.File)
	if err != nil {
		zr.Close()
		return nil, err
	}

	return &Reader{
		zr:      zr,
		entries: entries,
		hash:    fmt.Sprintf("%x", h.Sum(nil)),
	}, nil
}

// Hash returns the SHA-256 of the archive file, in hex.
func (r *Reader) Hash() string { return r.hash }

// Len returns the number of matching entries.
func (r *Reader) Len() int { return len(r.entries) }

// Next decodes and returns the next document in sequence order.
// It returns io.EOF after the last entry.
func (r *Reader) Next() (string, *model.Document, error) {
	if r.pos >= len(r.entries) {
		return "", nil, io.EOF
	}
	e := r.entries[r.pos]
	r.pos++

	f, err := r.zr.Open(e.path)
	if err != nil {
		return "", nil, fmt.Errorf("open entry %s: %w", e.path, err)
	}
	defer f.Close()

	var doc model.Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return "", nil, fmt.Errorf("decode %s: %w", e.path, err)
	}
	return e.name, &doc, nil
}

// Close closes the underlying zip reader.
func (r *Reader) Close() error {
	return r.zr.Close()
}

// sortedEntries filters the zip file list to data/<seq>.json entries
// and sorts them ascending by integer-tuple key.
func sortedEntries(files []*zip.File) ([]entry, error) {
	var entries []entry
	for _, f := range files {
		m := entryPattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		key, err := parseKey(m[1])
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", f.Name, err)
		}
		entries = append(entries, entry{name: m[1], path: f.Name, key: key})
	}
	sort.Slice(entries, func(i, j int) bool {
		return lessKey(entries[i].key, entries[j].key)
	})
	return entries, nil
}

// parseKey splits "1_2_3" into [1 2 3].
func parseKey(name string) ([]int, error) {
	segs := strings.Split(name, "_")
	key := make([]int, len(segs))
	for i, s := range segs {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("non-numeric sequence segment %q", s)
		}
		key[i] = n
	}
	return key, nil
}

// lessKey compares integer tuples lexicographically.
func lessKey(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

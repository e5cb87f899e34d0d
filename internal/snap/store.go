package snap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"snapforge/internal/canonical"
)

// ErrCorruptSnapshot reports an accepted file whose header or framing could
// not be parsed. It is distinct from plain I/O failures: a corrupt file was
// usually hand-edited or truncated and needs human attention, not a retry.
var ErrCorruptSnapshot = errors.New("corrupt snapshot file")

// headerMarker delimits the metadata block at the top of a snapshot file.
// The body starts on the line after the closing marker.
const headerMarker = "---"

// Accepted is a parsed accepted snapshot: header metadata plus the canonical
// body verbatim.
type Accepted struct {
	// Source names the test that produced the snapshot.
	Source string
	// Format hints how the body was rendered.
	Format canonical.Format
	// Created is an RFC 3339 marker written when the snapshot was first
	// accepted or last force-updated.
	Created string
	// Body is the canonical text, without the trailing newline the file
	// carries on disk.
	Body string
}

type header struct {
	Source  string `yaml:"source"`
	Format  string `yaml:"format,omitempty"`
	Created string `yaml:"created,omitempty"`
}

// Store reads and writes accepted snapshots. The zero value is ready to use;
// Now is overridable for deterministic tests.
type Store struct {
	Now func() time.Time
}

func (s *Store) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Read loads the accepted snapshot at path. Absence is not an error: a
// missing file returns (nil, nil) and means the comparison verdict is New.
func (s *Store) Read(path string) (*Accepted, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	acc, err := parseAccepted(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return acc, nil
}

// Write persists acc at path using an atomic replace, creating the snapshot
// directory if needed. It stamps Created when the caller left it empty.
//
// Write is only ever invoked by promotion and by the force-update policy;
// an ordinary failing comparison never reaches it.
func (s *Store) Write(path string, acc *Accepted) error {
	if acc == nil {
		return fmt.Errorf("write snapshot %s: nil snapshot", path)
	}
	out := *acc
	if out.Created == "" {
		out.Created = s.now().UTC().Format(time.RFC3339)
	}
	encoded, err := encodeAccepted(&out)
	if err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := writeFileAtomic(path, []byte(encoded)); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

func encodeAccepted(acc *Accepted) (string, error) {
	h := header{
		Source:  acc.Source,
		Format:  acc.Format.String(),
		Created: acc.Created,
	}
	meta, err := yaml.Marshal(&h)
	if err != nil {
		return "", fmt.Errorf("encode header: %w", err)
	}
	var b strings.Builder
	b.WriteString(headerMarker)
	b.WriteByte('\n')
	b.Write(meta)
	b.WriteString(headerMarker)
	b.WriteByte('\n')
	b.WriteString(acc.Body)
	b.WriteByte('\n')
	return b.String(), nil
}

func parseAccepted(raw string) (*Accepted, error) {
	rest, ok := strings.CutPrefix(raw, headerMarker+"\n")
	if !ok {
		return nil, fmt.Errorf("%w: missing opening header marker", ErrCorruptSnapshot)
	}
	meta, body, ok := strings.Cut(rest, "\n"+headerMarker+"\n")
	if !ok {
		// the header may close immediately after opening
		if after, found := strings.CutPrefix(rest, headerMarker+"\n"); found {
			meta, body = "", after
		} else {
			return nil, fmt.Errorf("%w: missing closing header marker", ErrCorruptSnapshot)
		}
	}
	var h header
	if err := yaml.Unmarshal([]byte(meta), &h); err != nil {
		return nil, fmt.Errorf("%w: bad header: %v", ErrCorruptSnapshot, err)
	}
	if h.Source == "" {
		return nil, fmt.Errorf("%w: header missing source", ErrCorruptSnapshot)
	}
	format, err := canonical.ParseFormat(h.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return &Accepted{
		Source:  h.Source,
		Format:  format,
		Created: h.Created,
		Body:    strings.TrimSuffix(body, "\n"),
	}, nil
}

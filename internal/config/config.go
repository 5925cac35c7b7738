// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: config :: persistent user configuration
//
//  Stored at ~/.picotools as a flat YAML mapping:
//
//    pico-sdk: /opt/pico-sdk
//
//  PICOTOOLS_CONFIG overrides the location. There is no locking: two
//  concurrent writers race and the last one wins.
// ─────────────────────────────────────────────────────────────────────────────

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/picotools/cli/internal/errs"
)

const (
	// FileName is the config file name inside the user's home directory.
	FileName = ".picotools"

	// KeySDK is the key attach-sdk writes.
	KeySDK = "pico-sdk"

	envPath = "PICOTOOLS_CONFIG"
)

// knownKeys documents the keys picotools itself reads.
var knownKeys = map[string]string{
	KeySDK: "path to the Raspberry Pi Pico SDK",
}

// Store is the user config file. The parsed YAML document is kept as is, so
// keys picotools does not know are written back with their original type,
// formatting and comments.
type Store struct {
	path string
	doc  *yaml.Node
}

// Path returns the config file location.
func Path() (string, error) {
	if p := os.Getenv(envPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// Open loads the store from its default location.
func Open() (*Store, error) {
	path, err := Path()
	if err != nil {
		return nil, errs.ConfigRead(FileName, err)
	}
	return Load(path)
}

func emptyDoc() *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
	}
}

// Load reads the store at path. A missing file is an empty store. A file
// that exists but cannot be read or parsed is a ConfigReadError, as is any
// top-level value that is not a scalar.
func Load(path string) (*Store, error) {
	s := &Store{path: path, doc: emptyDoc()}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, errs.ConfigRead(path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errs.ConfigRead(path, fmt.Errorf("parsing: %w", err))
	}
	if len(doc.Content) == 0 {
		return s, nil
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, errs.ConfigRead(path, errors.New("expected a mapping of keys to values"))
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if v := m.Content[i+1]; v.Kind != yaml.ScalarNode {
			return nil, errs.ConfigRead(path, fmt.Errorf("key %q: expected a scalar value", m.Content[i].Value))
		}
	}
	s.doc = &doc
	return s, nil
}

// File returns the path the store reads from and writes to.
func (s *Store) File() string { return s.path }

func (s *Store) mapping() *yaml.Node { return s.doc.Content[0] }

func (s *Store) lookup(key string) *yaml.Node {
	m := s.mapping()
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// Get returns the value stored under key as written in the file. A null
// value reads as "".
func (s *Store) Get(key string) (string, bool) {
	v := s.lookup(key)
	if v == nil {
		return "", false
	}
	if v.Tag == "!!null" {
		return "", true
	}
	return v.Value, true
}

// SDKPath returns the attached Pico SDK path, or "".
func (s *Store) SDKPath() string {
	v, _ := s.Get(KeySDK)
	return v
}

// Set stores value under key as a string and writes the whole file back.
// Every other key is left exactly as it was.
func (s *Store) Set(key, value string) error {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	if v := s.lookup(key); v != nil {
		// keep comments attached to the old value
		n.HeadComment, n.LineComment, n.FootComment = v.HeadComment, v.LineComment, v.FootComment
		*v = *n
	} else {
		m := s.mapping()
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, n)
	}
	return s.Save()
}

// Save writes the store to disk, replacing the previous content.
func (s *Store) Save() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errs.ConfigWrite(s.path, err)
		}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s.doc); err != nil {
		return errs.ConfigWrite(s.path, err)
	}
	if err := enc.Close(); err != nil {
		return errs.ConfigWrite(s.path, err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return errs.ConfigWrite(s.path, err)
	}
	return nil
}

// Entry is one key/value pair with its description. Value holds the decoded
// YAML scalar: string, int, float64, bool or nil.
type Entry struct {
	Key     string
	Value   interface{}
	Comment string
}

// All returns every stored entry, sorted by key.
func (s *Store) All() []Entry {
	m := s.mapping()
	entries := make([]Entry, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i].Value, m.Content[i+1]
		var val interface{}
		if err := v.Decode(&val); err != nil {
			val = v.Value
		}
		entries = append(entries, Entry{Key: k, Value: val, Comment: knownKeys[k]})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

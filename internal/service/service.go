// Package service implements the profile service that wires together
// configuration, the store layout, chain resolution, and serialization.
package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yalp/jsonpath"

	"github.com/spoolworks/spool/internal/config"
	"github.com/spoolworks/spool/internal/document"
	"github.com/spoolworks/spool/internal/resolve"
	"github.com/spoolworks/spool/internal/store"
)

// Service exposes the profile operations over one data root. It holds no
// mutable state: every call allocates its own chain and accumulator, so
// concurrent calls are independent.
type Service struct {
	Root   string
	Config *config.RootConfig
	Layout store.Layout
}

// New initialises a Service rooted at dataRoot.
// If dataRoot is empty it is resolved via config.GetDataRoot.
func New(dataRoot string) (*Service, error) {
	if dataRoot == "" {
		dataRoot = config.GetDataRoot()
	}

	cfg, err := config.Load(filepath.Join(dataRoot, "config.yaml"))
	if err != nil {
		return nil, fmt.Errorf("service.New: load config: %w", err)
	}

	return &Service{
		Root:   dataRoot,
		Config: cfg,
		Layout: store.FromRoot(dataRoot, cfg),
	}, nil
}

// BuildDocument resolves name's inheritance chain and returns the flattened
// profile document.
func (s *Service) BuildDocument(name string) (document.Document, error) {
	return resolve.Resolver{Layout: s.Layout}.Build(name)
}

// Build resolves name and returns the flattened profile as pretty-printed
// JSON text.
func (s *Service) Build(name string) (string, error) {
	doc, err := s.BuildDocument(name)
	if err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("Build: encode %q: %w", name, err)
	}
	return string(out), nil
}

// Query resolves name and extracts the value at the given JSONPath
// expression (e.g. "$.bed_temp") from the flattened profile.
func (s *Service) Query(name, path string) (string, error) {
	doc, err := s.BuildDocument(name)
	if err != nil {
		return "", err
	}
	val, err := jsonpath.Read(doc, path)
	if err != nil {
		return "", fmt.Errorf("Query: %q against profile %q: %w", path, name, err)
	}
	out, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		return "", fmt.Errorf("Query: encode result: %w", err)
	}
	return string(out), nil
}

// Export resolves name and writes the flattened profile to outPath,
// returning outPath on success.
func (s *Service) Export(name, outPath string) (string, error) {
	text, err := s.Build(name)
	if err != nil {
		return "", err
	}
	if err := SaveText(outPath, text+"\n"); err != nil {
		return "", err
	}
	return outPath, nil
}

// ListProfiles returns the sorted, duplicate-free names of the profiles in
// the user tier. Best-effort: unreadable files are skipped, never an error.
func (s *Service) ListProfiles() []string {
	return s.Layout.ListUserProfiles()
}

// ScanProfiles returns the per-file outcomes of a user-tier scan, including
// the files ListProfiles silently skips.
func (s *Service) ScanProfiles() []store.ScanEntry {
	return s.Layout.ScanUserProfiles()
}

// SaveText writes contents to path in a single whole-file write.
func SaveText(path, contents string) error {
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil { // #nosec G306 -- profile exports are not secrets
		return &document.IOError{Path: path, Err: err}
	}
	return nil
}

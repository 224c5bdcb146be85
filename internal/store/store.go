// Package store locates profile files across the layered user/system tiers
// of a data root and enumerates the profiles in the user tier.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spoolworks/spool/internal/config"
	"github.com/spoolworks/spool/internal/document"
)

// Ext is the file extension of profile documents.
const Ext = ".json"

// NotFoundError reports a profile name that no search tier resolves.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("profile %q not found", e.Name) }

// Layout holds the ordered search roots for one data root. User directories
// are always probed before the system tier, however many there are. The data
// root is injected by the caller; the layout never derives paths from the
// environment, so tests can run against synthetic roots.
type Layout struct {
	// UserDirs are the user override directories, highest priority first.
	UserDirs []string
	// SystemDir is the fixed system profile directory.
	SystemDir string
	// SystemRoot is the top of the system tree, walked when Recursive is set.
	SystemRoot string
	// Recursive selects the exhaustive system-tree search over the two
	// fixed system tiers.
	Recursive bool
}

// FromRoot builds the Layout for a data root: every user/<set>/<profile_dir>
// directory (sets sorted by name) followed by system/<profile_dir>.
func FromRoot(root string, cfg *config.RootConfig) Layout {
	layout := Layout{
		SystemDir:  filepath.Join(root, "system", cfg.ProfileDir),
		SystemRoot: filepath.Join(root, "system"),
		Recursive:  cfg.Search == config.SearchRecursive,
	}

	userRoot := filepath.Join(root, "user")
	entries, err := os.ReadDir(userRoot)
	if err != nil {
		return layout
	}
	sets := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			sets = append(sets, e.Name())
		}
	}
	sort.Strings(sets)
	for _, set := range sets {
		layout.UserDirs = append(layout.UserDirs, filepath.Join(userRoot, set, cfg.ProfileDir))
	}
	return layout
}

// Filename normalizes a profile lookup key to its on-disk filename.
func Filename(name string) string {
	if strings.HasSuffix(name, Ext) {
		return name
	}
	return name + Ext
}

// Stem returns the lookup key for a profile filename.
func Stem(filename string) string {
	return strings.TrimSuffix(filepath.Base(filename), Ext)
}

// Locate resolves a profile name to the path of its defining file, probing
// every user directory in priority order and then the system tier. The first
// existing regular file wins. Returns *NotFoundError when no tier matches.
func (l Layout) Locate(name string) (string, error) {
	filename := Filename(name)

	for _, dir := range l.UserDirs {
		slog.Debug("locate: probing user dir", "dir", dir, "file", filename)
		if path, ok := regularFile(filepath.Join(dir, filename)); ok {
			return path, nil
		}
	}

	if l.Recursive {
		if path, ok := l.searchSystemTree(filename); ok {
			return path, nil
		}
		return "", &NotFoundError{Name: name}
	}

	for _, dir := range []string{l.SystemDir, filepath.Join(l.SystemDir, "base")} {
		slog.Debug("locate: probing system dir", "dir", dir, "file", filename)
		if path, ok := regularFile(filepath.Join(dir, filename)); ok {
			return path, nil
		}
	}
	return "", &NotFoundError{Name: name}
}

// searchSystemTree walks the whole system tree depth-first looking for
// filename. The traversal keeps its own worklist rather than recursing, so
// pathological directory depth cannot exhaust the call stack. Subdirectory
// order within one directory follows the filesystem and is not guaranteed.
func (l Layout) searchSystemTree(filename string) (string, bool) {
	stack := []string{l.SystemRoot}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		slog.Debug("locate: probing system tree", "dir", dir, "file", filename)
		if path, ok := regularFile(filepath.Join(dir, filename)); ok {
			return path, true
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				stack = append(stack, filepath.Join(dir, e.Name()))
			}
		}
	}
	return "", false
}

func regularFile(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// ---------------------------------------------------------------------------
// User-tier enumeration
// ---------------------------------------------------------------------------

// ScanEntry is the per-file outcome of a user-tier scan.
type ScanEntry struct {
	Name    string // display name (document's name field, else filename stem)
	Path    string
	Skipped bool
	Reason  string // why the file was skipped, empty otherwise
}

// ScanUserProfiles inspects every profile file in the user directories and
// reports a structured outcome per file. Unreadable or unparsable files are
// recorded as skipped, never surfaced as errors.
func (l Layout) ScanUserProfiles() []ScanEntry {
	var scanned []ScanEntry
	for _, dir := range l.UserDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			doc, err := document.Load(path)
			if err != nil {
				slog.Warn("scan: skipping profile", "path", path, "err", err)
				scanned = append(scanned, ScanEntry{
					Name:    Stem(e.Name()),
					Path:    path,
					Skipped: true,
					Reason:  err.Error(),
				})
				continue
			}
			name, ok := document.StringField(doc, "name")
			if !ok {
				name = Stem(e.Name())
			}
			scanned = append(scanned, ScanEntry{Name: name, Path: path})
		}
	}
	return scanned
}

// ListUserProfiles returns the sorted, duplicate-free names of all readable
// profiles in the user tier. An empty or missing user tier yields an empty
// list, not an error.
func (l Layout) ListUserProfiles() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, entry := range l.ScanUserProfiles() {
		if entry.Skipped || seen[entry.Name] {
			continue
		}
		seen[entry.Name] = true
		names = append(names, entry.Name)
	}
	sort.Strings(names)
	return names
}

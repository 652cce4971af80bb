// Package discovery walks a repository directory and produces the ordered
// list of source files the rest of the pipeline parses. It is adapted from
// the ingestion walker's directory-skipping and extension-filtering logic,
// flattened from a channel-based async walk into a synchronous one so build
// order (and therefore every downstream ordering guarantee) is deterministic.
package discovery

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ripplescope/ripplescope/internal/errors"
)

// Language tags recognized by the pipeline.
const (
	Python     = "Python"
	JavaScript = "JavaScript"
	JSX        = "JSX"
	TypeScript = "TypeScript"
	TSX        = "TSX"
)

// extensionLanguages maps a recognized source extension to its language tag.
var extensionLanguages = map[string]string{
	".py":  Python,
	".js":  JavaScript,
	".jsx": JSX,
	".ts":  TypeScript,
	".tsx": TSX,
}

// denylist holds directory names that are never descended into, regardless
// of depth.
var denylist = map[string]bool{
	"node_modules":    true,
	".git":            true,
	".github":         true,
	"build":           true,
	"dist":            true,
	".next":           true,
	"venv":            true,
	".venv":           true,
	"env":             true,
	"__pycache__":     true,
	".pytest_cache":   true,
	".mypy_cache":     true,
	"coverage":        true,
	".idea":           true,
	".vscode":         true,
	"vendor":          true,
	"target":          true,
	"out":             true,
}

// FileDescriptor describes one discovered source file. Immutable once
// created.
type FileDescriptor struct {
	AbsolutePath      string
	PathRelativeToRoot string
	LanguageTag       string
	SizeBytes         int64
	LineCount         int
}

// Walk performs a depth-first traversal of root, returning every recognized
// source file in deterministic order, sorted lexically by path relative to
// root. It fails only if root does not exist or is not a directory — per-file
// read errors are skipped rather than propagated.
func Walk(root string) ([]FileDescriptor, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.PathInvalidError(err, "repository path does not exist or is not accessible: "+root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrorTypeFileSystem, errors.SeverityCritical, "repository path is not a directory: "+root)
	}

	var descriptors []FileDescriptor
	if err := walkDir(root, root, &descriptors); err != nil {
		return nil, err
	}

	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].PathRelativeToRoot < descriptors[j].PathRelativeToRoot
	})
	return descriptors, nil
}

func walkDir(root, dir string, out *[]FileDescriptor) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil // unreadable directory: skip and continue, not a build-halting error
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			if shouldSkipDir(name) {
				continue
			}
			if err := walkDir(root, path, out); err != nil {
				return err
			}
			continue
		}

		lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(name))]
		if !ok {
			continue
		}

		descriptor, ok := describeFile(root, path, lang)
		if !ok {
			continue
		}
		*out = append(*out, descriptor)
	}
	return nil
}

func shouldSkipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return denylist[name]
}

func describeFile(root, path, lang string) (FileDescriptor, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return FileDescriptor{}, false
	}

	lines, ok := countLines(path)
	if !ok {
		return FileDescriptor{}, false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	return FileDescriptor{
		AbsolutePath:       path,
		PathRelativeToRoot: rel,
		LanguageTag:        lang,
		SizeBytes:          info.Size(),
		LineCount:          lines,
	}, true
}

// countLines reads path as UTF-8 and counts newline-terminated logical
// lines, skipping the file on decode failure.
func countLines(path string) (int, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	count := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if !isValidUTF8(line) {
			return 0, false
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, false
	}
	return count, true
}

func isValidUTF8(b []byte) bool {
	return strings.ToValidUTF8(string(b), "�") == string(b)
}

package index

import (
	"os"
	"strings"
)

// fileContentCache is a per-path, line-indexed cache of source content,
// filled lazily during snippet extraction. It grows monotonically and is
// released along with the orchestrator that owns it (§9 design note).
type fileContentCache struct {
	lines map[string][]string
}

func newFileContentCache() *fileContentCache {
	return &fileContentCache{lines: make(map[string][]string)}
}

// snippet returns the whitespace-trimmed content of path's 1-indexed line,
// or "" if the file is unreadable or the line is out of range.
func (c *fileContentCache) snippet(path string, lineNo int) string {
	lines, ok := c.lines[path]
	if !ok {
		lines = readLines(path)
		c.lines[path] = lines
	}
	if lineNo < 1 || lineNo > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[lineNo-1])
}

func readLines(path string) []string {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return strings.Split(string(content), "\n")
}

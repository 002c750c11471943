package migrations

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Separator splits the up and down halves of a tern migration file.
const Separator = "---- create above / drop below ----"

var (
	sequencePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
	slugPattern     = regexp.MustCompile(`[^a-z0-9]+`)
)

const revisionTemplate = `-- %s

` + Separator + `

`

// NextRevisionName returns the file name for a new migration, numbered one
// past the highest sequence among existing.
func NextRevisionName(existing []string, message string) (string, error) {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(message), "_"), "_")
	if slug == "" {
		return "", fmt.Errorf("revision message %q has no usable characters", message)
	}

	var highest int
	for _, name := range existing {
		match := sequencePattern.FindStringSubmatch(filepath.Base(name))
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%03d_%s.sql", highest+1, slug), nil
}

// CreateRevision writes an empty migration into dir and returns its path.
func CreateRevision(dir, message string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read migrations dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	name, err := NextRevisionName(names, message)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create revision: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, revisionTemplate, message); err != nil {
		return "", fmt.Errorf("write revision: %w", err)
	}
	return path, nil
}

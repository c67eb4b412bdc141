package git

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/waabox/pipelinedeck/internal/domain"
)

// ErrNoOrigin is returned when .git/config has no origin remote.
var ErrNoOrigin = errors.New("no origin remote found in .git/config")

// ProjectLabel returns the label shown in the dashboard header for dir.
// It prefers the origin remote's owner/name and falls back to the
// directory's base name when dir is not a git checkout.
func ProjectLabel(dir string) string {
	repo, err := DetectRepository(dir)
	if err == nil {
		return repo.Slug()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Base(dir)
	}
	return filepath.Base(abs)
}

// DetectRepository reads .git/config under dir and builds a Repository from
// the origin remote URL.
func DetectRepository(dir string) (domain.Repository, error) {
	f, err := os.Open(filepath.Join(dir, ".git", "config"))
	if err != nil {
		return domain.Repository{}, fmt.Errorf("could not open .git/config: %w", err)
	}
	defer f.Close()

	url, err := originURL(bufio.NewScanner(f))
	if err != nil {
		return domain.Repository{}, err
	}
	return ParseRemoteURL(url)
}

func originURL(scanner *bufio.Scanner) (string, error) {
	var inOrigin bool
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == `[remote "origin"]`:
			inOrigin = true
		case !inOrigin:
		case strings.HasPrefix(line, "["):
			return "", ErrNoOrigin
		case strings.HasPrefix(line, "url"):
			if _, value, ok := strings.Cut(line, "="); ok {
				return strings.TrimSpace(value), nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading .git/config: %w", err)
	}
	return "", ErrNoOrigin
}

// ParseRemoteURL parses an HTTPS or SSH git remote URL. Nested group paths
// (gitlab.com/group/sub/project) keep everything before the last segment as
// the owner.
func ParseRemoteURL(rawURL string) (domain.Repository, error) {
	normalized := strings.TrimSuffix(strings.TrimSpace(rawURL), ".git")

	var path string
	switch {
	case strings.HasPrefix(normalized, "git@"):
		_, p, ok := strings.Cut(strings.TrimPrefix(normalized, "git@"), ":")
		if !ok {
			return domain.Repository{}, fmt.Errorf("invalid SSH remote URL: %s", rawURL)
		}
		path = p
	case strings.HasPrefix(normalized, "https://"), strings.HasPrefix(normalized, "http://"):
		withoutScheme := strings.TrimPrefix(strings.TrimPrefix(normalized, "https://"), "http://")
		_, p, ok := strings.Cut(withoutScheme, "/")
		if !ok {
			return domain.Repository{}, fmt.Errorf("invalid HTTPS remote URL: %s", rawURL)
		}
		path = p
	default:
		return domain.Repository{}, fmt.Errorf("unsupported remote URL format: %s", rawURL)
	}

	idx := strings.LastIndex(path, "/")
	if idx <= 0 || idx == len(path)-1 {
		return domain.Repository{}, fmt.Errorf("invalid remote URL path: %s", path)
	}
	return domain.Repository{
		Owner:     path[:idx],
		Name:      path[idx+1:],
		RemoteURL: rawURL,
	}, nil
}

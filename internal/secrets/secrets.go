// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads API credentials for the fetch and detect stages
// from a directory of one-value files: the filename names the credential
// (x-bearer-token, github-token, anthropic-api-key) and the trimmed file
// body is its value. Keeping tokens out of the config file means the
// config can be committed while .secrets/ stays ignored.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load collects every credential file in dir into a name-to-value map.
// A dir that does not exist yields an empty map, not an error: running
// without secrets is a valid (unauthenticated or rules-only) mode.
// Dotfiles and subdirectories are ignored; a file that cannot be read
// warns on stderr and is skipped; blank values are dropped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	found := map[string]string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		value, err := readSecret(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if value != "" {
			found[name] = value
		}
	}
	return found, nil
}

// readSecret returns the trimmed contents of one credential file.
func readSecret(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

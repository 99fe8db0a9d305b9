// ABOUTME: Loads LAUNCHDASH_* and other variables from a .env file at startup.
// ABOUTME: Existing environment variables always win; the file only fills gaps.
package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// parseDotEnv reads KEY=VALUE pairs. Blank lines and # comments are
// skipped, an "export " prefix is allowed, and one layer of matching single
// or double quotes is removed from values.
func parseDotEnv(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		// Values may themselves contain '='.
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		vars[key] = unquote(strings.TrimSpace(value))
	}
	return vars, scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if first == last && (first == '"' || first == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// loadDotEnv applies the variables in path that are not already set and
// returns how many it set. A missing file is not an error.
func loadDotEnv(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	vars, err := parseDotEnv(f)
	if err != nil {
		return 0, err
	}
	set := 0
	for k, v := range vars {
		if _, exists := os.LookupEnv(k); exists {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return set, err
		}
		set++
	}
	return set, nil
}

// loadDotEnvAuto loads .env from the working directory, then from the
// directory holding the executable. Errors are ignored; a broken .env file
// should not stop the dashboard from starting with its other config.
func loadDotEnvAuto() {
	seen := map[string]bool{}
	load := func(dir string) {
		p := filepath.Join(dir, ".env")
		if seen[p] {
			return
		}
		seen[p] = true
		loadDotEnv(p)
	}
	if wd, err := os.Getwd(); err == nil {
		load(wd)
	}
	if exe, err := os.Executable(); err == nil {
		load(filepath.Dir(exe))
	}
}

// Package tokens reads and writes whitespace-separated integer token
// sequences, the prompt/output exchange format of instrumented
// generation runs.
package tokens

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Load reads all tokens from path. Tokens may be split across lines and
// separated by any whitespace. An empty file is an error: a generation
// run needs at least one prompt token.
func Load(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tokens file: %w", err)
	}
	defer f.Close()

	var toks []int64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		for _, field := range strings.Fields(scanner.Text()) {
			v, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid token %q in %s: %w", field, path, err)
			}
			toks = append(toks, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tokens file: %w", err)
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("token file is empty: %s", path)
	}
	return toks, nil
}

// Save writes tokens space-separated on one line.
func Save(path string, toks []int64) error {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = strconv.FormatInt(t, 10)
	}
	data := strings.Join(parts, " ") + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("write tokens file: %w", err)
	}
	return nil
}

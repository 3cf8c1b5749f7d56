package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// readURLList scans newline-delimited URLs, skipping blank lines and
// #-prefixed comments.
func readURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

// ReadURLsFromFile reads a batch file. A missing file is a hard error; no
// partial processing happens.
func ReadURLsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read batch file %s: %w", path, err)
	}
	defer file.Close()

	urls, err := readURLList(file)
	if err != nil {
		return nil, fmt.Errorf("error reading batch file %s: %w", path, err)
	}
	return urls, nil
}

// ReadURLsFromStdin reads URLs from standard input until EOF. A read error
// aborts the whole collection step; no partial URL list is used.
func ReadURLsFromStdin() ([]string, error) {
	urls, err := readURLList(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("error reading URLs from stdin: %w", err)
	}
	return urls, nil
}

// CollectURLs combines positional arguments, an optional batch file, and
// optional stdin input, deduplicating while preserving first-appearance
// order.
func CollectURLs(args []string, batchFile string, useStdin bool) ([]string, error) {
	seen := make(map[string]bool)
	var urls []string

	add := func(list []string) {
		for _, u := range list {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}

	add(args)

	if batchFile != "" {
		fileURLs, err := ReadURLsFromFile(batchFile)
		if err != nil {
			return nil, err
		}
		add(fileURLs)
	}

	if useStdin {
		stdinURLs, err := ReadURLsFromStdin()
		if err != nil {
			return nil, err
		}
		add(stdinURLs)
	}

	return urls, nil
}

package flatfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	errs "github.com/vogiaan1904/eventease/internal/errors"
)

const (
	fileMode      = 0o644
	maxLineLength = 1024 * 1024
)

// scanLines calls fn for every line of path with the trailing newline and
// any carriage return removed. A missing file is treated as empty.
func scanLines(path string, fn func(lineNo int, line string) (stop bool)) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: opening %s: %w", errs.ErrStoreUnavailable, path, err)
	}
	defer file.Close()

	scanner := newLineScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if fn(lineNo, trimLine(scanner.Text())) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	return scanner
}

func trimLine(line string) string {
	return strings.TrimSuffix(line, "\r")
}

// appendLine adds one record to the end of path, creating the file when
// needed.
func appendLine(path, line string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, fileMode)
	if err != nil {
		return fmt.Errorf("%w: opening %s for append: %w", errs.ErrStoreUnavailable, path, err)
	}
	if _, err := io.WriteString(file, line+"\n"); err != nil {
		file.Close()
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// rewriteFile replaces path with whatever fill writes. fill runs against a
// temporary file in the same directory; when it returns commit=false or an
// error the temporary file is removed and path is left untouched. On commit
// the temporary file is synced and renamed into place.
func rewriteFile(path string, fill func(w *bufio.Writer) (commit bool, err error)) (bool, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+"-*.tmp")
	if err != nil {
		return false, fmt.Errorf("%w: creating temporary file for %s: %w", errs.ErrStoreUnavailable, path, err)
	}
	tmpPath := tmp.Name()

	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmp)
	commit, err := fill(w)
	if err != nil || !commit {
		tmp.Close()
		return false, err
	}

	if err := w.Flush(); err != nil {
		tmp.Close()
		return false, fmt.Errorf("writing temporary file for %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return false, fmt.Errorf("syncing temporary file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("closing temporary file for %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, fileMode); err != nil {
		return false, fmt.Errorf("setting mode on temporary file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return false, fmt.Errorf("renaming temporary file over %s: %w", path, err)
	}
	renamed = true

	// Make the rename itself durable.
	if parent, err := os.Open(dir); err == nil {
		parent.Sync()
		parent.Close()
	}
	return true, nil
}

// writeAll rewrites path so that it holds exactly lines.
func writeAll(path string, lines []string) error {
	_, err := rewriteFile(path, func(w *bufio.Writer) (bool, error) {
		for _, line := range lines {
			if _, err := w.WriteString(line + "\n"); err != nil {
				return false, err
			}
		}
		return true, nil
	})
	return err
}

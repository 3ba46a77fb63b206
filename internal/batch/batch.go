// Package batch reads sentence files for bulk rewriting.
package batch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Item is one line of a JSONL input file.
type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Result is one line of a JSONL output file.
type Result struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Output string `json:"output"`
	RunID  string `json:"run_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// LoadFromJSONL loads items from a JSONL file. Malformed lines are skipped
// with a warning; an input with no valid items is an error.
func LoadFromJSONL(path string, log *zap.Logger) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	items, err := Read(f, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Read parses JSONL items from r. Lines without an id get their line number.
func Read(r io.Reader, log *zap.Logger) ([]Item, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var items []Item
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			log.Warn("skipping malformed line", zap.Int("line", n), zap.Error(err))
			continue
		}
		if item.ID == "" {
			item.ID = fmt.Sprintf("%d", n)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no valid items found")
	}
	return items, nil
}

// Writer encodes results as JSONL.
type Writer struct {
	enc *json.Encoder
}

// NewWriter creates a JSONL writer.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// Write emits one result line.
func (w *Writer) Write(r Result) error {
	return w.enc.Encode(r)
}

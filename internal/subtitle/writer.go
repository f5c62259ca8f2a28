package subtitle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Serialize encodes seq in the exchange format. Records with id 0 are
// omitted and ids are written as carried, without renumbering.
func Serialize(seq Sequence) (string, error) {
	var sb strings.Builder
	for _, rec := range seq {
		// 0 marks a record with no timeline element
		if rec.ID == 0 {
			continue
		}

		start, err := FormatTimecode(rec.Start)
		if err != nil {
			return "", fmt.Errorf("record %d start: %w", rec.ID, err)
		}
		end, err := FormatTimecode(rec.End)
		if err != nil {
			return "", fmt.Errorf("record %d end: %w", rec.ID, err)
		}

		sb.WriteString(strconv.Itoa(rec.ID))
		sb.WriteString("\n")

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(start)
		sb.WriteString(timecodeSeparator)
		sb.WriteString(end)
		sb.WriteString("\n")

		sb.WriteString(rec.Text)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

// Write serializes seq to w. Nothing is written when encoding fails.
func Write(w io.Writer, seq Sequence) error {
	out, err := Serialize(seq)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// WriteFile serializes seq to path, creating the parent directory.
func WriteFile(path string, seq Sequence) error {
	out, err := Serialize(seq)
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write SRT file: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

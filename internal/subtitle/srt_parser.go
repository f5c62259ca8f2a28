package subtitle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const timecodeSeparator = " --> "

// two or more consecutive line breaks end a block; whitespace-only lines
// belong to the record text
var blockSeparator = regexp.MustCompile(`\n\n+`)

var errMissingArrow = errors.New("missing \" --> \" separator")

// ParseFile reads and parses a subtitle file. A UTF-8 BOM is dropped and
// UTF-16 files with a BOM are transcoded.
func ParseFile(path string) (Sequence, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	seq, err := ParseReader(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seq, nil
}

// ParseReader decodes r and parses its content.
func ParseReader(r io.Reader) (Sequence, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return nil, fmt.Errorf("error reading SRT file: %w", err)
	}
	return Parse(string(data))
}

// Parse splits content into blocks and decodes each one. Blocks with fewer
// than three lines are skipped. A malformed id or timecode fails the whole
// parse and no partial sequence is returned.
func Parse(content string) (Sequence, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSpace(content)
	if content == "" {
		return Sequence{}, nil
	}

	seq := Sequence{}
	for i, block := range blockSeparator.Split(content, -1) {
		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}

		rec, err := parseBlock(lines)
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Block = i + 1
			}
			return nil, err
		}
		seq = append(seq, rec)
	}

	return seq, nil
}

func parseBlock(lines []string) (Record, error) {
	id, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return Record{}, &FormatError{Field: "id", Value: lines[0], Err: err}
	}

	startText, endText, ok := strings.Cut(lines[1], timecodeSeparator)
	if !ok {
		return Record{}, &FormatError{
			Field: "timecode",
			Value: lines[1],
			Err:   errMissingArrow,
		}
	}
	start, err := ParseTimecode(startText)
	if err != nil {
		return Record{}, err
	}
	end, err := ParseTimecode(endText)
	if err != nil {
		return Record{}, err
	}

	return Record{
		ID:    id,
		Start: start,
		End:   end,
		Text:  strings.Join(lines[2:], "\n"),
	}, nil
}

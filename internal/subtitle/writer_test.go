package subtitle

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSerialize(t *testing.T) {
	seq := Sequence{
		{ID: 1, Start: 1.0, End: 2.5, Text: "Hello"},
		{ID: 5, Start: 3.0, End: 4.0, Text: "Two\nLines"},
	}

	got, err := Serialize(seq)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}

	want := "1\n00:00:01,000 --> 00:00:02,500\nHello\n\n" +
		"5\n00:00:03,000 --> 00:00:04,000\nTwo\nLines\n\n"
	if got != want {
		t.Errorf("Serialize mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestSerializeSkipsZeroID(t *testing.T) {
	seq := Sequence{
		{ID: 0, Start: 0, End: 1, Text: "dropped"},
		{ID: 1, Start: 1, End: 2, Text: "kept"},
	}

	got, err := Serialize(seq)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	if strings.Contains(got, "dropped") {
		t.Errorf("id 0 record was written: %q", got)
	}
	if got != "1\n00:00:01,000 --> 00:00:02,000\nkept\n\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestSerializeRejectsNegativeTime(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Sequence{{ID: 1, Start: -1, End: 2, Text: "x"}})
	if !errors.Is(err, ErrNegativeTime) {
		t.Fatalf("expected ErrNegativeTime, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written, got %q", buf.String())
	}
}

func TestRoundTrip(t *testing.T) {
	seq := Sequence{
		{ID: 1, Start: 0, End: 1.25, Text: "First"},
		{ID: 2, Start: 1.5, End: 3723.004, Text: "Second\nline two"},
		{ID: 4, Start: 4000.999, End: 4001, Text: "ünïcödé ✓"},
	}

	out, err := Serialize(seq)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	got, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(got) != len(seq) {
		t.Fatalf("expected %d records, got %d", len(seq), len(got))
	}
	for i := range seq {
		if got[i].ID != seq[i].ID || got[i].Text != seq[i].Text {
			t.Errorf("record %d: expected %+v, got %+v", i, seq[i], got[i])
		}
		if math.Abs(got[i].Start-seq[i].Start) > 0.001 ||
			math.Abs(got[i].End-seq[i].End) > 0.001 {
			t.Errorf("record %d times: expected %v-%v, got %v-%v",
				i, seq[i].Start, seq[i].End, got[i].Start, got[i].End)
		}
	}
}

func TestRoundTripWhitespaceOnlyTextLine(t *testing.T) {
	seq := Sequence{
		{ID: 1, Start: 1, End: 2, Text: "a\n \nb"},
		{ID: 2, Start: 3, End: 4, Text: "c\n\t\nd"},
	}

	out, err := Serialize(seq)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	got, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(got) != len(seq) {
		t.Fatalf("expected %d records, got %d: %+v", len(seq), len(got), got)
	}
	for i := range seq {
		if got[i].Text != seq[i].Text {
			t.Errorf("record %d: expected text %q, got %q", i, seq[i].Text, got[i].Text)
		}
	}
}

func TestParseTrimsTrailingWhitespaceOfLastRecord(t *testing.T) {
	seq := Sequence{
		{ID: 1, Start: 1, End: 2, Text: "Hello "},
		{ID: 2, Start: 3, End: 4, Text: "World "},
	}

	out, err := Serialize(seq)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	got, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	// only the end of the whole file is trimmed
	if got[0].Text != "Hello " || got[1].Text != "World" {
		t.Fatalf("unexpected texts: %q, %q", got[0].Text, got[1].Text)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.srt")
	seq := Sequence{{ID: 1, Start: 1, End: 2, Text: "Hello"}}

	if err := WriteFile(path, seq); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(data) != "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n" {
		t.Errorf("unexpected file content: %q", data)
	}
}

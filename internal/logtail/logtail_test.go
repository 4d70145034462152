package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "none (0)", maxLines: 0, expected: nil},
		{name: "none (negative)", maxLines: -1, expected: nil},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Entry
	}{
		{
			name:  "slog line with quoted values",
			input: `time=2026-10-19T10:00:00.000Z level=ERROR msg="save failed" name="Ramen Bar" error="api PATCH /restaurants/Ramen Bar returned status 500"`,
			want: Entry{
				Time:    "2026-10-19T10:00:00.000Z",
				Level:   "ERROR",
				Message: "save failed",
				Attrs: []Attr{
					{Key: "name", Value: "Ramen Bar"},
					{Key: "error", Value: "api PATCH /restaurants/Ramen Bar returned status 500"},
				},
			},
		},
		{
			name:  "bare values",
			input: `time=t level=info msg=started api=127.0.0.1:8080`,
			want: Entry{
				Time:    "t",
				Level:   "INFO",
				Message: "started",
				Attrs:   []Attr{{Key: "api", Value: "127.0.0.1:8080"}},
			},
		},
		{
			name:  "escaped quote",
			input: `level=WARN msg="say \"hi\""`,
			want:  Entry{Level: "WARN", Message: `say "hi"`},
		},
		{
			name:  "free text",
			input: "panic: something went wrong",
			want:  Entry{Message: "panic: something went wrong"},
		},
		{
			name:  "unterminated quote",
			input: `level=INFO msg="oops`,
			want:  Entry{Message: `level=INFO msg="oops`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want.Raw = tt.input
			if got := Parse(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestEntrySummary(t *testing.T) {
	e := Parse(`time=t level=ERROR msg="delete failed" name="Kebab Corner" status=500`)
	if got, want := e.Summary(), `ERROR delete failed name="Kebab Corner" status=500`; got != want {
		t.Fatalf("Summary() = %q, want %q", got, want)
	}
	if got := Parse("plain text").Summary(); got != "plain text" {
		t.Fatalf("Summary() = %q, want plain text", got)
	}
}

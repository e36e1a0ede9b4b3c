package pipeline

import (
	"testing"
	"time"

	"github.com/matzehuels/followgraph/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	d1 := time.Date(2016, 2, 17, 10, 0, 0, 0, time.UTC)
	d2 := d1.Add(time.Hour)

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"zero", Options{}, ""},
		{"bounded", Options{Since: d1, Until: d2}, ""},
		{"equal bounds", Options{Since: d1, Until: d1}, ""},
		{"inverted", Options{Since: d2, Until: d1}, errors.ErrCodeInvalidTimespan},
		{"negative top", Options{Top: -1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestOptionsValidateDropsBlankWords(t *testing.T) {
	opts := Options{Words: []string{" talk ", "", "  "}, Author: " alyssa "}
	if err := opts.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Words) != 1 || opts.Words[0] != "talk" {
		t.Errorf("words = %q", opts.Words)
	}
	if opts.Author != "alyssa" {
		t.Errorf("author = %q", opts.Author)
	}
	if !opts.HasFilter() {
		t.Error("HasFilter should be true")
	}
}

func TestParseWords(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"  ", 0},
		{"talk", 1},
		{"talk, rivest,,", 2},
	}
	for _, tt := range tests {
		if got := ParseWords(tt.in); len(got) != tt.want {
			t.Errorf("ParseWords(%q) = %q, want %d words", tt.in, got, tt.want)
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"", time.Time{}, false},
		{"2016-02-17", time.Date(2016, 2, 17, 0, 0, 0, 0, time.UTC), false},
		{"2016-02-17T10:00:00Z", time.Date(2016, 2, 17, 10, 0, 0, 0, time.UTC), false},
		{"yesterday", time.Time{}, true},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTime(%q) error = %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

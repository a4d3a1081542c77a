package layout

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain text", "AAPL", 4},
		{"with ANSI bold", "\x1b[1mAAPL\x1b[0m", 4},
		{"umlaut", "Türkis", 6},
		{"color and umlaut", "\x1b[38;2;90;200;250mTürkis\x1b[0m", 6},
		{"empty", "", 0},
		{"only ANSI", "\x1b[1m\x1b[0m", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleLength(tt.input)
			if got != tt.want {
				t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"no truncation needed", "NVIDIA", 10, "NVIDIA", false},
		{"exact length", "NVIDIA", 6, "NVIDIA", false},
		{"needs truncation", "Microsoft Corp.", 8, "Micro...", true},
		{"very short max", "Siemens", 3, "...", true},
		{"max is 2", "Siemens", 2, "..", true},
		{"max is 1", "Siemens", 1, ".", true},
		{"max is 0", "Siemens", 0, "", true},
		{"empty string", "", 10, "", false},
		{"umlaut", "Dividendenjäger", 10, "Dividen...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncateANSIAware(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		input     string
		maxWidth  int
		wantPlain string
	}{
		{"no truncation plain", "SAP SE", 10, "SAP SE"},
		{"no truncation styled", "\x1b[1mSAP SE\x1b[0m", 10, "SAP SE"},
		{"truncation plain", "SIE - Siemens AG", 8, "SIE -..."},
		{"truncation styled", "\x1b[1mhello world\x1b[0m", 8, "hello..."},
		{"partial style", "he\x1b[1mllo wor\x1b[0mld", 8, "hello..."},
		{"zero width", "hello", 0, ""},
		{"negative width", "hello", -1, ""},
		{"empty input", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateANSIAware(tt.input, tt.maxWidth, cfg)
			if plain := ansi.Strip(got); plain != tt.wantPlain {
				t.Errorf("TruncateANSIAware(%q, %d) = %q (plain %q), want plain %q",
					tt.input, tt.maxWidth, got, plain, tt.wantPlain)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"AAPL", 7, "AAPL   "},
		{"Türkis", 8, "Türkis  "},
		{"exactly", 7, "exactly"},
		{"NVIDIA Corp.", 8, "NVIDI..."},
		{"x", 0, ""},
	}

	for _, tt := range tests {
		if got := PadRight(tt.text, tt.width, cfg); got != tt.want {
			t.Errorf("PadRight(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestPadLeft(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"$182.52", 10, "   $182.52"},
		{"+1.23%", 6, "+1.23%"},
		{"$12345.67", 6, "$12..."},
	}

	for _, tt := range tests {
		if got := PadLeft(tt.text, tt.width, cfg); got != tt.want {
			t.Errorf("PadLeft(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

package sanitizer

import (
	"reflect"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{
			name:   "valid E.164 format",
			input:  "+6591234567",
			region: "SG",
			want:   "+6591234567",
		},
		{
			name:   "national number uses default region",
			input:  "9123 4567",
			region: "SG",
			want:   "+6591234567",
		},
		{
			name:   "with parentheses",
			input:  "+1 (650) 253-0000",
			region: "SG",
			want:   "+16502530000",
		},
		{
			name:   "leading and trailing spaces",
			input:  "  +6591234567  ",
			region: "SG",
			want:   "+6591234567",
		},
		{
			name:   "empty string",
			input:  "",
			region: "SG",
			want:   "",
		},
		{
			name:   "garbage left for the validator",
			input:  " not-a-phone ",
			region: "SG",
			want:   "not-a-phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input, tt.region)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q, %q) = %q, want %q", tt.input, tt.region, got, tt.want)
			}
		})
	}
}

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim spaces", "  Court A  ", "Court A"},
		{"collapse inner whitespace", "Court\t\n  A", "Court A"},
		{"empty", "", ""},
		{"only whitespace", "  \t ", ""},
		{"unicode preserved", " Café Court ", "Café Court"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeSmallFields(t *testing.T) {
	if got := NormalizeEmail("  Jane.Doe@Example.COM "); got != "jane.doe@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
	if got := NormalizeCode(" b 12 "); got != "B12" {
		t.Errorf("NormalizeCode = %q", got)
	}
	if got := NormalizeReference(" bk-0a1b2c3d4e "); got != "BK-0A1B2C3D4E" {
		t.Errorf("NormalizeReference = %q", got)
	}
	if got := NormalizeLabel("  Admin "); got != "admin" {
		t.Errorf("NormalizeLabel = %q", got)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"http://WWW.Example.com/avatars/jane.png", "https://example.com/avatars/jane.png"},
		{"example.com/p/", "https://example.com/p"},
		{"https://cdn.example.com/a.png?utm_source=x&size=2", "https://cdn.example.com/a.png?size=2"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeURL(tt.input); got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeStringSlice(t *testing.T) {
	got := NormalizeStringSlice([]string{"Admin", " staff", "ADMIN", "", "  "}, NormalizeLabel)
	want := []string{"admin", "staff"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := NormalizeStringSlice(nil, NormalizeLabel); len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}

func TestIdempotent(t *testing.T) {
	inputs := []string{" http://Example.com/x/ ", "  A  b ", "+1 (212) 555-1234"}
	for _, in := range inputs {
		once := NormalizeURL(in)
		if twice := NormalizeURL(once); once != twice {
			t.Errorf("NormalizeURL not idempotent for %q: %q vs %q", in, once, twice)
		}
		n := TrimAndNormalize(in)
		if TrimAndNormalize(n) != n {
			t.Errorf("TrimAndNormalize not idempotent for %q", in)
		}
		p := NormalizePhone(in, "US")
		if NormalizePhone(p, "US") != p {
			t.Errorf("NormalizePhone not idempotent for %q", in)
		}
	}
}

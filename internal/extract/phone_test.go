package extract

import (
	"reflect"
	"testing"
)

func TestExtractPhones(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "indian and us numbers in one line",
			input: "Call me at +91 98765 43210 or (555) 123-4567",
			want:  []string{"+919876543210", "+15551234567"},
		},
		{
			name:  "bare ten digit indian mobile",
			input: "Phone: 9123456780",
			want:  []string{"+919123456780"},
		},
		{
			name:  "us dashed number gets country code",
			input: "Cell: 555-123-4567",
			want:  []string{"+15551234567"},
		},
		{
			name:  "international with zero zero prefix",
			input: "Tel: 0044 20 7946 0958",
			want:  []string{"+442079460958"},
		},
		{
			name:  "us full with country code",
			input: "+1 (555) 123-4567",
			want:  []string{"+15551234567"},
		},
		{
			name:  "deduplicates formatting variants",
			input: "Mobile: +91-9123456780\nWhatsApp: 9123456780",
			want:  []string{"+919123456780"},
		},
		{
			name:  "no phone",
			input: "John Doe\nSoftware Engineer",
			want:  nil,
		},
		{
			name:  "year ranges are not phones",
			input: "Worked 2018 - 2022 at Acme, project budget 1,500,000",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPhones(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractPhones(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestExtractPhonesRejectsFakes verifies template numbers never survive,
// in any formatting, labeled or not.
func TestExtractPhonesRejectsFakes(t *testing.T) {
	inputs := []string{
		"Phone: 1234567890",
		"Mobile: 123-456-7890",
		"Contact: 0123456789",
		"Call 9876543210",
		"Tel: 1111111111",
		"Phone: 0000000000",
	}

	for _, input := range inputs {
		if got := ExtractPhones(input); len(got) != 0 {
			t.Errorf("ExtractPhones(%q) = %v, want no results", input, got)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+919876543210", true},  // Indian with country code
		{"9123456780", true},     // bare Indian mobile
		{"+15551234567", true},   // US with country code
		{"15551234567", true},    // US without plus
		{"+442079460958", true},  // UK

		{"", false},
		{"9876543210", false},       // fake sequence
		{"1234567890", false},       // fake sequence
		{"1111111111", false},       // repeated digit
		{"5551234567", false},       // 10 digits not starting 6-9
		{"+911234567890", false},    // Indian mobile must start 6-9
		{"25551234567", false},      // 11 digits not starting 1
		{"12345", false},            // too short
		{"1234567890123456", false}, // too long
		{"++15551234567", false},    // double plus
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := IsValidPhone(tt.phone); got != tt.want {
				t.Errorf("IsValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"+919876543210", "+919876543210"}, // already formatted
		{"9123456780", "+919123456780"},    // Indian mobile gets +91
		{"919876543210", "+919876543210"},  // Indian with bare country code
		{"15551234567", "+15551234567"},    // US with bare country code
		{"442079460958", "+442079460958"},  // generic long number
		{"5551234567", ""},                 // ambiguous 10 digits dropped
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FormatPhone(tt.input); got != tt.want {
				t.Errorf("FormatPhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanPhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"+91-98765-43210", "+919876543210"},
		{"(555) 123.4567", "5551234567"},
		{"0044 20 7946 0958", "+442079460958"},
		{"Phone: 9123456780", "9123456780"}, // label word stripped
		{"123", ""},                         // too few digits
		{"12345678901234567890", ""},        // too many digits
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := cleanPhone(tt.input); got != tt.want {
				t.Errorf("cleanPhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

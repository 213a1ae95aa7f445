package service

import "testing"

func TestFormatPretty(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "double newlines collapsed",
			input: "first\n\nsecond",
			want:  "first\nsecond",
		},
		{
			name:  "dash becomes bullet",
			input: "- drink water\n- rest often",
			want:  "• drink water\n• rest often",
		},
		{
			name:  "key value bolded",
			input: "Sleep: at least 7 hours",
			want:  "**Sleep**: at least 7 hours",
		},
		{
			name:  "url line untouched",
			input: "https://example.com/article",
			want:  "https://example.com/article",
		},
		{
			name:  "indented bullet recognized",
			input: "  - nap when the baby naps",
			want:  "• nap when the baby naps",
		},
		{
			name:  "plain line untouched",
			input: "You are doing great",
			want:  "You are doing great",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPretty(tt.input); got != tt.want {
				t.Fatalf("FormatPretty(%q) = %q; want %q", tt.input, got, tt.want)
			}
		})
	}
}

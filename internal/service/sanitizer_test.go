package service

import (
	"strings"
	"testing"
)

func TestSanitizerCleanIdentity(t *testing.T) {
	s := NewSanitizer(nil)
	inputs := []string{
		"",
		"How often should my baby feed?",
		"My back hurts after the delivery",
	}
	for _, in := range inputs {
		if got := s.Clean(in); got != in {
			t.Fatalf("Clean(%q) = %q; want identity", in, got)
		}
	}
}

func TestSanitizerCleanCensors(t *testing.T) {
	s := NewSanitizer(nil)
	got := s.Clean("this fucking rash will not go away")
	if strings.Contains(strings.ToLower(got), "fucking") {
		t.Fatalf("Clean did not censor profanity: %q", got)
	}
	if !strings.Contains(got, "rash will not go away") {
		t.Fatalf("Clean mangled surrounding text: %q", got)
	}
}

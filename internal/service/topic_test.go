package service

import "testing"

func TestNaiveTopic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty input", input: "", want: "New Chat"},
		{name: "only stopwords", input: "the is in and", want: "New Chat"},
		{name: "short tokens filtered", input: "a is to of it", want: "New Chat"},
		{name: "frequency order", input: "baby sleep baby food sleep baby", want: "Baby Sleep Food"},
		{name: "tie broken by first appearance", input: "feeding schedule naps", want: "Feeding Schedule Naps"},
		{name: "mixed case and punctuation", input: "Baby! BABY? baby... colic", want: "Baby Colic"},
		{name: "stopwords removed around keywords", input: "what can i do about baby colic and baby sleep", want: "Baby Colic Sleep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NaiveTopic(tt.input); got != tt.want {
				t.Fatalf("NaiveTopic(%q) = %q; want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNaiveTopicDeterministic(t *testing.T) {
	const input = "vaccines fever vaccines teething fever rash"
	first := NaiveTopic(input)
	for i := 0; i < 50; i++ {
		if got := NaiveTopic(input); got != first {
			t.Fatalf("run %d: NaiveTopic changed from %q to %q", i, first, got)
		}
	}
}

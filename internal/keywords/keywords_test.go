package keywords

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "lowercases and strips punctuation",
			input:    "Senior Engineer, Python & Go!",
			expected: "senior engineer python go",
		},
		{
			name:     "keeps hyphens",
			input:    "problem-solving skills",
			expected: "problem-solving skills",
		},
		{
			name:     "collapses whitespace",
			input:    "too   many \t spaces\n here",
			expected: "too many spaces here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.expected {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractNgrams(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected []string
	}{
		{
			name:     "unigrams drop stopwords and short tokens",
			input:    "the quick brown fox is at it",
			n:        1,
			expected: []string{"quick", "brown", "fox"},
		},
		{
			name:     "bigrams formed over filtered stream",
			input:    "the quick brown fox",
			n:        2,
			expected: []string{"quick brown", "brown fox"},
		},
		{
			name:     "bigram spans removed stopword",
			input:    "quick and brown",
			n:        2,
			expected: []string{"quick brown"},
		},
		{
			name:     "too few tokens for bigrams",
			input:    "python",
			n:        2,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractNgrams(tt.input, tt.n)
			if len(got) != len(tt.expected) {
				t.Fatalf("ExtractNgrams(%q, %d) = %v, want %v", tt.input, tt.n, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("ngram[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestTopNgrams(t *testing.T) {
	got := TopNgrams("the quick brown fox the quick brown fox", 5)

	if len(got) == 0 {
		t.Fatal("expected non-empty result")
	}
	for _, kc := range got {
		if kc.Term == "the" {
			t.Errorf("stopword %q should be excluded", kc.Term)
		}
	}

	counts := map[string]int{}
	for _, kc := range got {
		counts[kc.Term] = kc.Count
	}
	if counts["quick"] != 2 || counts["brown"] != 2 {
		t.Errorf("expected quick and brown with count 2, got %v", got)
	}

	// Count-2 terms must rank before any count-1 term.
	seenCountOne := false
	for _, kc := range got {
		if kc.Count < 2 {
			seenCountOne = true
		} else if seenCountOne {
			t.Errorf("count %d term %q after a lower-count term", kc.Count, kc.Term)
		}
	}
}

func TestTopNgramsTieOrder(t *testing.T) {
	// All terms appear once; ties must keep first-seen order.
	got := TopNgrams("alpha beta gamma", 2)

	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Term != "alpha" || got[1].Term != "beta" {
		t.Errorf("tie order not preserved: %v", got)
	}
}

func TestATSReport(t *testing.T) {
	jobText := "python developer building python services with docker kubernetes and terraform"
	userText := "Experienced python engineer who ships docker containers"

	report := ATSReport(jobText, userText, 5)

	matched := map[string]int{}
	for _, m := range report.TopMatches {
		matched[m.Term] = m.Count
	}
	if matched["python"] < 1 {
		t.Errorf("python should be a match with count >= 1, got %v", report.TopMatches)
	}
	if matched["docker"] < 1 {
		t.Errorf("docker should be a match, got %v", report.TopMatches)
	}

	foundGap := false
	for _, g := range report.TopGaps {
		if g == "terraform" {
			foundGap = true
		}
		if strings.Contains(userText, g) {
			t.Errorf("gap %q actually present in user text", g)
		}
	}
	if !foundGap {
		t.Errorf("terraform should be a gap, got %v", report.TopGaps)
	}
}

func TestATSReportGapTruncation(t *testing.T) {
	jobText := strings.Repeat("alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima mike november ", 2)
	report := ATSReport(jobText, "nothing relevant here", 20)

	if len(report.TopGaps) > 10 {
		t.Errorf("gaps must be truncated to 10, got %d", len(report.TopGaps))
	}
	if len(report.TopMatches) != 0 {
		t.Errorf("expected no matches, got %v", report.TopMatches)
	}
}

func TestATSReportMatchesSortedByCount(t *testing.T) {
	jobText := "go go go redis redis postgres"
	userText := "redis redis redis postgres go"

	report := ATSReport(jobText, userText, 10)
	for i := 1; i < len(report.TopMatches); i++ {
		if report.TopMatches[i].Count > report.TopMatches[i-1].Count {
			t.Errorf("matches not sorted by count desc: %v", report.TopMatches)
		}
	}
}

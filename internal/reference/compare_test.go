package reference

import (
	"testing"

	"github.com/verte-zerg/sprech/internal/transcript"
)

func tokens(t *testing.T, text string) []transcript.Token {
	t.Helper()
	toks, err := transcript.Tokenize(text)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	return toks
}

func TestCompareExact(t *testing.T) {
	report := New().Compare("Guten Morgen", tokens(t, "guten morgen"))
	if report.Coverage != 1 {
		t.Fatalf("expected full coverage, got %v", report.Coverage)
	}
	for _, w := range report.Words {
		if w.Status != StatusMatched {
			t.Fatalf("expected matched, got %+v", w)
		}
	}
	if len(report.Extra) != 0 {
		t.Fatalf("expected no extra words, got %v", report.Extra)
	}
}

func TestCompareMisheardAndMissing(t *testing.T) {
	report := New().Compare("Ich möchte ein Brötchen", tokens(t, "ich mochte Brotchen"))
	if len(report.Words) != 4 {
		t.Fatalf("expected 4 words, got %d", len(report.Words))
	}
	if report.Words[0].Status != StatusMatched {
		t.Fatalf("expected first word matched, got %+v", report.Words[0])
	}
	if report.Words[1].Status != StatusMisheard || report.Words[1].Spoken != "mochte" {
		t.Fatalf("expected möchte misheard as mochte, got %+v", report.Words[1])
	}
	if report.Words[2].Status != StatusMissing {
		t.Fatalf("expected ein missing, got %+v", report.Words[2])
	}
	if report.Words[3].Status != StatusMisheard {
		t.Fatalf("expected Brötchen misheard, got %+v", report.Words[3])
	}
	if report.Coverage != 0.75 {
		t.Fatalf("expected coverage 0.75, got %v", report.Coverage)
	}
}

func TestCompareExtraWords(t *testing.T) {
	report := New().Compare("Hallo", tokens(t, "äh Hallo Leute"))
	if report.Words[0].Status != StatusMatched {
		t.Fatalf("expected Hallo matched, got %+v", report.Words[0])
	}
	if len(report.Extra) != 2 || report.Extra[0] != "äh" || report.Extra[1] != "Leute" {
		t.Fatalf("unexpected extra words: %v", report.Extra)
	}
}

func TestCompareEmptyExpected(t *testing.T) {
	report := New().Compare("  ", tokens(t, "Hallo"))
	if len(report.Words) != 0 || report.Coverage != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

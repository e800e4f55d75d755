package phoneme

import (
	"strings"
	"testing"

	"github.com/verte-zerg/sprech/internal/model"
)

func TestDefaultTable(t *testing.T) {
	table := Default()
	symbols := table.Symbols()
	if len(symbols) != 8 {
		t.Fatalf("expected 8 phonemes, got %d: %v", len(symbols), symbols)
	}
	p, ok := table.Lookup("ü")
	if !ok {
		t.Fatalf("expected ü to be known")
	}
	if p.ExpectedIPA != "yː" || p.Tier != model.DifficultyHard {
		t.Fatalf("unexpected entry: %+v", p)
	}
	if len(p.CommonMistakeIPAs) == 0 {
		t.Fatalf("expected common mistakes for ü")
	}
}

func TestLookupFallback(t *testing.T) {
	p, ok := Default().Lookup("k")
	if ok {
		t.Fatalf("expected k to use fallback")
	}
	if p.Symbol != "k" || p.ExpectedIPA != "k" || p.Tier != model.DifficultyEasy {
		t.Fatalf("unexpected fallback: %+v", p)
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	table := Default()
	p, _ := table.Lookup("r")
	p.CommonMistakeIPAs[0] = "x"
	again, _ := table.Lookup("r")
	if again.CommonMistakeIPAs[0] == "x" {
		t.Fatalf("table entry was mutated through lookup")
	}
}

func TestParseRejectsBadTier(t *testing.T) {
	_, err := Parse([]byte("phonemes:\n  - symbol: x\n    tier: extreme\n    ipa: x\n"))
	if err == nil {
		t.Fatalf("expected error for unknown tier")
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	data := []byte("phonemes:\n  - {symbol: r, tier: easy, ipa: r}\n  - {symbol: r, tier: easy, ipa: r}\n")
	if _, err := Parse(data); err == nil {
		t.Fatalf("expected error for duplicate symbol")
	}
}

func TestParseSymbols(t *testing.T) {
	table := Default()
	got, err := table.ParseSymbols(" R, ä ch,r ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if strings.Join(got, "|") != "r|ä|ch" {
		t.Fatalf("unexpected symbols %v", got)
	}
	if _, err := table.ParseSymbols("ü,zz"); err == nil {
		t.Fatalf("expected error for unknown symbol")
	}
	if got, err := table.ParseSymbols(""); err != nil || len(got) != 0 {
		t.Fatalf("expected empty selection, got %v (%v)", got, err)
	}
}

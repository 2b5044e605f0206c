package printer

import (
	"strings"
	"testing"
	"unicode"
)

func TestMoney(t *testing.T) {
	r := &Receipt{Currency: "KES"}
	if got := r.Money(150050); got != "KES 1500.50" {
		t.Errorf("expected KES 1500.50, got %q", got)
	}
	if got := r.Money(0); got != "KES 0.00" {
		t.Errorf("expected KES 0.00, got %q", got)
	}
}

func TestTitleWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"one hundred and fifty", "One Hundred And Fifty"},
		{"zero", "Zero"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := titleWords(tt.in); got != tt.want {
			t.Errorf("titleWords(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAmountInWords(t *testing.T) {
	r := &Receipt{Total: 10000, Currency: "KES"}
	words := r.AmountInWords()
	if !strings.HasSuffix(words, " Only") {
		t.Errorf("expected signature-line suffix, got %q", words)
	}
	first := []rune(words)[0]
	if !unicode.IsUpper(first) {
		t.Errorf("expected capitalized amount, got %q", words)
	}
}

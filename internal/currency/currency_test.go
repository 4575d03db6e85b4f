package currency

import "testing"

func TestCatalog(t *testing.T) {
	all := All()
	if len(all) != 18 {
		t.Fatalf("expected 18 currencies, got %d", len(all))
	}
	if all[0].Code != Default {
		t.Errorf("first currency = %s, want %s", all[0].Code, Default)
	}

	for _, c := range all {
		if !Supported(c.Code) {
			t.Errorf("Supported(%s) = false", c.Code)
		}
	}
	if Supported("XYZ") {
		t.Error("Supported(XYZ) = true, want false")
	}

	if got := Symbol("THB"); got != "฿" {
		t.Errorf("Symbol(THB) = %q, want ฿", got)
	}
	if got := Symbol("XYZ"); got != "XYZ" {
		t.Errorf("Symbol(XYZ) = %q, want code fallback", got)
	}
	if got := Name("XYZ"); got != "XYZ" {
		t.Errorf("Name(XYZ) = %q, want code fallback", got)
	}
}

func TestFraction(t *testing.T) {
	tests := map[string]int{"USD": 2, "EUR": 2, "JPY": 0, "KRW": 0}
	for _, c := range All() {
		want, ok := tests[c.Code]
		if ok && c.Fraction != want {
			t.Errorf("%s fraction = %d, want %d", c.Code, c.Fraction, want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount float64
		code   string
		want   string
	}{
		{30, "USD", "$30.00"},
		{33.33, "USD", "$33.33"},
		{1234.5, "USD", "$1,234.50"},
		{1.005, "USD", "$1.01"},
		{12.34, "XYZ", "12.34 XYZ"},
	}
	for _, tt := range tests {
		if got := Format(tt.amount, tt.code); got != tt.want {
			t.Errorf("Format(%v, %s) = %q, want %q", tt.amount, tt.code, got, tt.want)
		}
	}
}

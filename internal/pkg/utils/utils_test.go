package utils

import (
	"math/big"
	"testing"
)

func TestParseBaseUnits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "123456789", want: "123456789"},
		{in: `"5000000000"`, want: "5000000000"},
		{in: " 0 ", want: "0"},
		{in: "", wantErr: true},
		{in: "12.5", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseBaseUnits(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseBaseUnits(%q) expected error, got %s", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseBaseUnits(%q): %v", tc.in, err)
		}
		if got.String() != tc.want {
			t.Fatalf("ParseBaseUnits(%q)=%s want %s", tc.in, got, tc.want)
		}
	}
}

func TestToDisplayUnits(t *testing.T) {
	t.Parallel()

	wei, _ := new(big.Int).SetString("1500000000000000000", 10)
	if got := ToDisplayUnits(wei, 18, 6).StringFixed(6); got != "1.500000" {
		t.Fatalf("wei=%s", got)
	}
	if got := ToDisplayUnits(big.NewInt(123456789), 8, 8).StringFixed(8); got != "1.23456789" {
		t.Fatalf("satoshi=%s", got)
	}
	// 0.0000004 ETH rounds to zero at six decimals.
	if got := ToDisplayUnits(big.NewInt(400000000000), 18, 6).StringFixed(6); got != "0.000000" {
		t.Fatalf("dust=%s", got)
	}
	if got := ToDisplayUnits(nil, 18, 6); !got.IsZero() {
		t.Fatalf("nil=%s", got)
	}
}

func TestFormatDisplayAmount(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"0":            "0",
		"0.000000":     "0",
		"0.0000001":    "< 0.000001",
		"1.500000":     "1.5",
		"1234567.891":  "1,234,567.891",
		"0.12345678":   "0.123457",
		"999":          "999",
		"1000":         "1,000",
		"not-a-number": "not-a-number",
	}
	for in, want := range cases {
		if got := FormatDisplayAmount(in); got != want {
			t.Fatalf("FormatDisplayAmount(%q)=%q want %q", in, got, want)
		}
	}
}

func TestFormatUSD(t *testing.T) {
	t.Parallel()

	if got := FormatUSD("1234.5"); got != "$1,234.50" {
		t.Fatalf("FormatUSD=%q", got)
	}
	if got := FormatUSD("0.00"); got != "$0.00" {
		t.Fatalf("FormatUSD zero=%q", got)
	}
}

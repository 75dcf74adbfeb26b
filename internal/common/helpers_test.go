package common

import (
	"errors"
	"testing"

	"github.com/AlexZinkM/warthog-wallet/internal/model"
)

func TestWartToE8(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"1", 100000000},
		{"0.00000001", 1},
		{"1.5", 150000000},
		{" 2.25 ", 225000000},
		{"0.1", 10000000},
		{"1e-8", 1},
		{"123456.789", 12345678900000},
		{"+3", 300000000},
		{".5", 50000000},
		{"2.", 200000000},
	}
	for _, tt := range tests {
		got, err := WartToE8(tt.in)
		if err != nil {
			t.Fatalf("WartToE8(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("WartToE8(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWartToE8Invalid(t *testing.T) {
	for _, in := range []string{"0", "-1", "abc", "", "NaN", "Inf", "0.000000001", "1e30", "0x1p0", "1_000", "Infinity", "1.2.3", "1 2", "e5"} {
		_, err := WartToE8(in)
		if err == nil {
			t.Errorf("WartToE8(%q): expected error", in)
			continue
		}
		var amountErr *model.InvalidAmountError
		if !errors.As(err, &amountErr) {
			t.Errorf("WartToE8(%q): expected InvalidAmountError, got %T", in, err)
		}
	}
}

func TestE8ToWart(t *testing.T) {
	tests := map[uint64]string{
		0:         "0.00000000",
		1:         "0.00000001",
		100000000: "1.00000000",
		123456789: "1.23456789",
	}
	for in, want := range tests {
		if got := E8ToWart(in); got != want {
			t.Errorf("E8ToWart(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatBalance(t *testing.T) {
	e8 := uint64(250000000)
	if got := FormatBalance("ignored", &e8); got != "2.50000000" {
		t.Errorf("FormatBalance with E8 = %q", got)
	}
	if got := FormatBalance("3.5", nil); got != "3.50000000" {
		t.Errorf("FormatBalance(3.5) = %q", got)
	}
	if got := FormatBalance("", nil); got != "0.00000000" {
		t.Errorf("FormatBalance(empty) = %q", got)
	}
}

func TestIsPositiveAmount(t *testing.T) {
	for _, s := range []string{"0.0001", " 1 ", "0.000000001"} {
		if !IsPositiveAmount(s) {
			t.Errorf("IsPositiveAmount(%q) = false", s)
		}
	}
	for _, s := range []string{"", "0", "-1", "abc", "NaN", "Inf", "0x1p-4", "0_1"} {
		if IsPositiveAmount(s) {
			t.Errorf("IsPositiveAmount(%q) = true", s)
		}
	}
}

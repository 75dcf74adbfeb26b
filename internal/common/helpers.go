package common

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/AlexZinkM/warthog-wallet/internal/model"
)

const (
	WARTDecimals = 8 // 1 WART = 10^8 E8 units
	E8PerWART    = 100000000
)

// WartToE8 converts a decimal WART string to E8 base units.
// The value is parsed as a float and value*1e8 is rounded half to even.
// Anything that is not a finite positive number, or rounds to zero, is rejected.
func WartToE8(wart string) (uint64, error) {
	v, ok := parsePositive(wart)
	if !ok {
		return 0, &model.InvalidAmountError{Field: "amount", Value: wart}
	}

	e8 := math.RoundToEven(v * E8PerWART)
	// 2^64 is exactly representable; anything at or above it overflows uint64
	if e8 <= 0 || e8 >= math.Ldexp(1, 64) {
		return 0, &model.InvalidAmountError{Field: "amount", Value: wart}
	}
	return uint64(e8), nil
}

// IsPositiveAmount reports whether s is a finite decimal number above zero.
// Fees are checked this way before the node rounds them.
func IsPositiveAmount(s string) bool {
	_, ok := parsePositive(s)
	return ok
}

// plain decimal with optional exponent; ParseFloat alone also takes hex floats and underscores
var decimalPattern = regexp.MustCompile(`^\+?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func parsePositive(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// E8ToWart converts E8 units to a WART string without float precision loss
func E8ToWart(e8 uint64) string {
	return formatWithDecimals(e8, WARTDecimals)
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 8) = "0.24981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := fmt.Sprintf("%d", value)

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// FormatBalance renders a node balance with 8 decimals.
// balanceE8 wins when the node reports it; otherwise the decimal balance is reformatted.
func FormatBalance(balance string, balanceE8 *uint64) string {
	if balanceE8 != nil {
		return E8ToWart(*balanceE8)
	}
	if balance == "" {
		return E8ToWart(0)
	}
	v, err := strconv.ParseFloat(balance, 64)
	if err != nil {
		return balance
	}
	return strconv.FormatFloat(v, 'f', WARTDecimals, 64)
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Filename returns the canonical census file name for a year,
// e.g. Filename(2014) == "accident_2014.csv.bz2".
func Filename(year int) string {
	return fmt.Sprintf("accident_%d.csv.bz2", year)
}

// CoerceYear converts a year given as a string into an integer year.
// Integer and decimal forms are both accepted; decimals truncate toward
// zero, so "2014.9" means 2014. Non-numeric input is an error rather
// than a silent zero.
func CoerceYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return int(f), nil
}

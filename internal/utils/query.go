// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotInteger is returned when a query value cannot be parsed as an int.
var ErrNotInteger = errors.New("not an integer")

// ParseInt parses a base-10 integer after trimming surrounding space.
// Empty input is an error.
//
// Example:
//
//	n, err := utils.ParseInt(" 12 ") // 12, nil
//	_, err = utils.ParseInt("12.5")  // ErrNotInteger
func ParseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrNotInteger
	}
	return n, nil
}

// OptionalInt parses s like ParseInt but returns nil for an empty value.
func OptionalInt(s string) (*int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	n, err := ParseInt(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

package models

import (
	"fmt"
	"strings"
)

// Size is a value object for the pizza size code.
type Size string

const (
	SizeSmall  Size = "S"
	SizeMedium Size = "M"
	SizeLarge  Size = "L"
)

// Sizes lists the accepted size codes in menu order.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// ParseSize trims s and returns it as a Size if it is one of S, M or L.
func ParseSize(s string) (Size, error) {
	size := Size(strings.TrimSpace(s))
	if !size.Valid() {
		return "", fmt.Errorf("size %q: must be S, M or L", s)
	}
	return size, nil
}

// Valid reports whether s is one of the accepted codes.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	default:
		return false
	}
}

// String returns the underlying string value.
func (s Size) String() string {
	return string(s)
}

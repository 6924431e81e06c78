package services

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// ParsePositive reads a page or limit query value. Anything that is not a
// positive integer yields fallback.
func ParsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

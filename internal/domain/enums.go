package domain

import "fmt"

// ResolutionMode selects how the option schema of the target product is
// satisfied before a custom variant is created.
type ResolutionMode string

const (
	// ResolutionModeAugment keeps the product's existing option schema: the
	// first option receives the caller's custom value, every later option
	// its first declared value.
	ResolutionModeAugment ResolutionMode = "augment"
	// ResolutionModeAddOption registers a brand-new product option (single
	// value = the custom value) and selects only that option.
	ResolutionModeAddOption ResolutionMode = "add-option"
)

// IsValid checks if the resolution mode is valid
func (m ResolutionMode) IsValid() bool {
	switch m {
	case ResolutionModeAugment, ResolutionModeAddOption:
		return true
	default:
		return false
	}
}

// ParseResolutionMode parses a configured mode string
func ParseResolutionMode(s string) (ResolutionMode, error) {
	m := ResolutionMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid resolution mode %q (expected %q or %q)", s, ResolutionModeAugment, ResolutionModeAddOption)
	}
	return m, nil
}

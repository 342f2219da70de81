package models

import (
	"fmt"
	"regexp"
	"strconv"
)

// Nomenclature numbers have the fixed shape XXX-NNNNNN: a three character
// alphanumeric prefix implied by the item's root group, a dash and a six
// digit sequence number.
var (
	nomenclatureRe = regexp.MustCompile(`^[A-Z0-9]{3}-[0-9]{6}$`)
	prefixRe       = regexp.MustCompile(`^[A-Z0-9]{3}$`)
)

// ItemKind classifies an item by the root of its group hierarchy.
type ItemKind string

const (
	ItemKindPart     ItemKind = "part"
	ItemKindAssembly ItemKind = "assembly"
	ItemKindStandard ItemKind = "standard"
	ItemKindMaterial ItemKind = "material"
	ItemKindOther    ItemKind = "other"

	// ItemKindProduct is the numbering kind used by complect-derived
	// products; it shares the allocator but never the item counters.
	ItemKindProduct ItemKind = "product"
)

// DefaultPrefix returns the numbering prefix used when the root group
// carries no abbreviation of its own.
func (k ItemKind) DefaultPrefix() string {
	switch k {
	case ItemKindPart:
		return "DET"
	case ItemKindAssembly:
		return "SBE"
	case ItemKindStandard:
		return "STD"
	case ItemKindMaterial:
		return "MAT"
	case ItemKindProduct:
		return "IZD"
	default:
		return "PKI"
	}
}

// ValidNomenclatureNumber reports whether s is a well-formed number.
func ValidNomenclatureNumber(s string) bool {
	return nomenclatureRe.MatchString(s)
}

// ValidNomenclaturePrefix reports whether s can prefix a number.
func ValidNomenclaturePrefix(s string) bool {
	return prefixRe.MatchString(s)
}

// FormatNomenclatureNumber renders prefix and sequence number as a code.
func FormatNomenclatureNumber(prefix string, n int) (string, error) {
	if !ValidNomenclaturePrefix(prefix) {
		return "", fmt.Errorf("invalid nomenclature prefix %q", prefix)
	}
	if n < 1 || n > 999999 {
		return "", fmt.Errorf("nomenclature sequence %d out of range", n)
	}
	return fmt.Sprintf("%s-%06d", prefix, n), nil
}

// ParseNomenclatureNumber splits a code into its prefix and sequence number.
func ParseNomenclatureNumber(code string) (prefix string, n int, ok bool) {
	if !ValidNomenclatureNumber(code) {
		return "", 0, false
	}
	n, err := strconv.Atoi(code[4:])
	if err != nil {
		return "", 0, false
	}
	return code[:3], n, true
}

// Package pagination turns untrusted page/limit/sort/search query
// parameters into typed, bounded values.
//
// Two deliberately separate strategies exist:
//   - Clamp: silently bounds out-of-range values. Used by plain list
//     endpoints where a best-effort page is always an acceptable answer.
//   - Validate: strict mode that rejects out-of-range or malformed
//     parameters. Used by explicit validation gates such as exports.
//
// They are kept as separately named, separately invoked strategies on
// purpose: merging them would silently alter the contract of whichever
// endpoints use the other one.
package pagination

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edustack/admin-api/internal/errs"
)

const (
	// DefaultMaxPage caps the page number when configuration provides none.
	DefaultMaxPage = 1000
	// DefaultMaxLimit caps the page size when configuration provides none.
	DefaultMaxLimit = 100
	// DefaultMaxSearchLength caps search strings when configuration provides none.
	DefaultMaxSearchLength = 200
)

// Bounds is the immutable, process-wide pagination policy, sourced from
// configuration at startup with fixed fallbacks. Safe for concurrent
// use; nothing mutates it after construction.
type Bounds struct {
	MaxPage         int
	MaxLimit        int
	MaxSearchLength int
}

// NewBounds builds Bounds, substituting defaults for non-positive values.
func NewBounds(maxPage, maxLimit, maxSearchLength int) Bounds {
	if maxPage <= 0 {
		maxPage = DefaultMaxPage
	}
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	if maxSearchLength <= 0 {
		maxSearchLength = DefaultMaxSearchLength
	}
	return Bounds{MaxPage: maxPage, MaxLimit: maxLimit, MaxSearchLength: maxSearchLength}
}

// DefaultBounds returns the fixed fallback bounds.
func DefaultBounds() Bounds {
	return NewBounds(0, 0, 0)
}

// Params are clamped pagination values ready for query building.
type Params struct {
	Page   int
	Limit  int
	Search string
}

// Skip converts page/limit into a row offset. Always >= 0.
func (p Params) Skip() int {
	skip := (p.Page - 1) * p.Limit
	if skip < 0 {
		return 0
	}
	return skip
}

// SortedParams are strictly validated pagination values, including the
// vetted sort column and direction.
type SortedParams struct {
	Params
	SortBy    string
	SortOrder string
}

// Clamp converts raw query parameters into bounded values. It never
// fails: non-numeric or sub-1 values become 1, values above the bounds
// become the bound, and search is silently truncated.
func (b Bounds) Clamp(rawPage, rawLimit, rawSearch string) Params {
	page := clampInt(rawPage, b.MaxPage)
	limit := clampInt(rawLimit, b.MaxLimit)

	search := rawSearch
	if len(search) > b.MaxSearchLength {
		search = search[:b.MaxSearchLength]
	}

	return Params{Page: page, Limit: limit, Search: search}
}

// Validate is the strict counterpart of Clamp, used by endpoints that
// must reject rather than repair. It fails with InvalidFormat for
// non-numeric page/limit and with OutOfRange when a value exceeds the
// bounds, sortBy is outside the allow-list, or sortOrder is not one of
// asc/desc. Empty sortBy/sortOrder select the caller's defaults.
func (b Bounds) Validate(rawPage, rawLimit, rawSortBy, rawSortOrder string, allowedSort []string) (SortedParams, error) {
	page, err := strictInt(rawPage, "page", b.MaxPage)
	if err != nil {
		return SortedParams{}, err
	}
	limit, err := strictInt(rawLimit, "limit", b.MaxLimit)
	if err != nil {
		return SortedParams{}, err
	}

	sortBy := rawSortBy
	if sortBy != "" && !contains(allowedSort, sortBy) {
		return SortedParams{}, errs.NewValidationError(
			errs.OutOfRange,
			"sortBy",
			fmt.Sprintf("sortBy must be one of: %s", strings.Join(allowedSort, ", ")),
		)
	}

	sortOrder := strings.ToLower(rawSortOrder)
	if sortOrder != "" && sortOrder != "asc" && sortOrder != "desc" {
		return SortedParams{}, errs.NewValidationError(
			errs.OutOfRange,
			"sortOrder",
			"sortOrder must be asc or desc",
		)
	}

	return SortedParams{
		Params:    Params{Page: page, Limit: limit},
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}, nil
}

// clampInt parses raw leniently: anything non-numeric or below 1 maps
// to 1, anything above max maps to max.
func clampInt(raw string, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}

// strictInt parses raw strictly. Empty selects 1; non-numeric input is
// InvalidFormat; out-of-bounds is OutOfRange.
func strictInt(raw, field string, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValidationError(
			errs.InvalidFormat,
			field,
			fmt.Sprintf("%s must be a number", field),
		)
	}
	if n < 1 || n > max {
		return 0, errs.NewValidationError(
			errs.OutOfRange,
			field,
			fmt.Sprintf("%s must be between 1 and %d", field, max),
		)
	}
	return n, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

package slugify

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DefaultMaxProbes caps the collision-suffix search before the allocator
// falls back to a timestamp suffix to guarantee termination.
const DefaultMaxProbes = 1000

// Store is the slug-namespace probe used during allocation. Implementations
// back it with a unique-indexed column so concurrent allocations of the same
// base name are rejected by the store and retried by the caller.
type Store interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
	SlugExistsExceptID(ctx context.Context, slug string, id uint) (bool, error)
}

// Allocator derives unique, URL-safe slugs for one catalog entity kind.
type Allocator struct {
	store Store
	kind  string

	// MaxProbes bounds the -1, -2, ... suffix search.
	MaxProbes int
	// Now is overridable for deterministic tests.
	Now func() time.Time
}

// NewAllocator creates a slug allocator for the given entity kind ("venue",
// "service", ...). The kind seeds the fallback slug for unusable names.
func NewAllocator(store Store, kind string) *Allocator {
	return &Allocator{
		store:     store,
		kind:      kind,
		MaxProbes: DefaultMaxProbes,
		Now:       time.Now,
	}
}

// Normalize lowercases the name, collapses every run of non-alphanumeric
// characters into a single hyphen and strips leading/trailing hyphens.
func Normalize(name string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) && r < 128 {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen && b.Len() > 0 {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// IsValid reports whether a stored slug is usable. Empty slugs and the
// literal string "null" (a legacy serialization artifact) are regenerated.
func IsValid(slug string) bool {
	return slug != "" && slug != "null"
}

// Allocate derives a unique slug for name, excluding excludeID from the
// collision probe when the entity being saved already exists. On collision it
// appends -1, -2, ... up to MaxProbes, then falls back to the current
// timestamp so allocation always terminates.
func (a *Allocator) Allocate(ctx context.Context, name string, excludeID uint) (string, error) {
	base := Normalize(name)
	if !IsValid(base) {
		base = a.fallbackBase(excludeID)
	}

	candidate := base
	for i := 0; i <= a.maxProbes(); i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		taken, err := a.exists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	// Probe budget exhausted: a timestamp suffix is unique enough and
	// guarantees termination.
	return fmt.Sprintf("%s-%d", base, a.Now().UnixNano()), nil
}

// ShouldReallocate reports whether a rename (or an invalid stored slug)
// requires minting a new slug. A rename only re-derives when the new base
// slug differs from what is stored.
func ShouldReallocate(currentSlug, newName string) bool {
	if !IsValid(currentSlug) {
		return true
	}
	return Normalize(newName) != currentSlug
}

func (a *Allocator) fallbackBase(excludeID uint) string {
	if excludeID > 0 {
		return fmt.Sprintf("%s-%d", a.kind, excludeID)
	}
	return fmt.Sprintf("%s-%d", a.kind, a.Now().Unix())
}

func (a *Allocator) maxProbes() int {
	if a.MaxProbes > 0 {
		return a.MaxProbes
	}
	return DefaultMaxProbes
}

func (a *Allocator) exists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	if excludeID > 0 {
		return a.store.SlugExistsExceptID(ctx, slug, excludeID)
	}
	return a.store.SlugExists(ctx, slug)
}

package slugify

import (
	"context"
	"strings"
	"testing"
	"time"
)

// memStore is an in-memory slug namespace for allocator tests.
type memStore struct {
	taken map[string]uint
}

func newMemStore(slugs ...string) *memStore {
	m := &memStore{taken: make(map[string]uint)}
	for i, s := range slugs {
		m.taken[s] = uint(i + 1)
	}
	return m
}

func (m *memStore) SlugExists(_ context.Context, slug string) (bool, error) {
	_, ok := m.taken[slug]
	return ok, nil
}

func (m *memStore) SlugExistsExceptID(_ context.Context, slug string, id uint) (bool, error) {
	owner, ok := m.taken[slug]
	return ok && owner != id, nil
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Grand Palace", want: "grand-palace"},
		{in: "  Grand   Palace  ", want: "grand-palace"},
		{in: "Rose & Lily Hall", want: "rose-lily-hall"},
		{in: "Hall #3 (East Wing)", want: "hall-3-east-wing"},
		{in: "UPPER", want: "upper"},
		{in: "---", want: ""},
		{in: "", want: ""},
		{in: "café royal", want: "caf-royal"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	if IsValid("") {
		t.Fatalf("empty slug must be invalid")
	}
	if IsValid("null") {
		t.Fatalf("literal null slug must be invalid")
	}
	if !IsValid("grand-palace") {
		t.Fatalf("expected grand-palace to be valid")
	}
}

func TestAllocateFirstComeKeepsBase(t *testing.T) {
	a := NewAllocator(newMemStore(), "venue")

	slug, err := a.Allocate(context.Background(), "Grand Palace", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slug != "grand-palace" {
		t.Fatalf("expected base slug, got %q", slug)
	}
}

func TestAllocateCollisionAppendsSuffix(t *testing.T) {
	a := NewAllocator(newMemStore("grand-palace", "grand-palace-1"), "venue")

	slug, err := a.Allocate(context.Background(), "Grand Palace", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slug != "grand-palace-2" {
		t.Fatalf("expected grand-palace-2, got %q", slug)
	}
}

func TestAllocateProbeBudgetFallsBackToTimestamp(t *testing.T) {
	store := newMemStore("hall", "hall-1", "hall-2", "hall-3")
	a := NewAllocator(store, "venue")
	a.MaxProbes = 3
	a.Now = func() time.Time { return time.Unix(0, 1700000000000000000) }

	slug, err := a.Allocate(context.Background(), "Hall", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slug != "hall-1700000000000000000" {
		t.Fatalf("expected timestamp fallback, got %q", slug)
	}
}

func TestAllocateUnusableNameUsesKindFallback(t *testing.T) {
	a := NewAllocator(newMemStore(), "venue")
	a.Now = func() time.Time { return time.Unix(1700000000, 0) }

	slug, err := a.Allocate(context.Background(), "###", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slug != "venue-1700000000" {
		t.Fatalf("expected kind fallback, got %q", slug)
	}
	if !IsValid(slug) || strings.Contains(slug, " ") {
		t.Fatalf("fallback slug %q is not usable", slug)
	}
}

func TestAllocateExcludesOwnRowOnUpdate(t *testing.T) {
	store := newMemStore("grand-palace")
	a := NewAllocator(store, "venue")

	// ID 1 owns grand-palace; re-allocating for the same row keeps the slug.
	slug, err := a.Allocate(context.Background(), "Grand Palace", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slug != "grand-palace" {
		t.Fatalf("expected own slug to be reusable, got %q", slug)
	}
}

func TestShouldReallocate(t *testing.T) {
	tests := []struct {
		slug string
		name string
		want bool
	}{
		{slug: "grand-palace", name: "Grand Palace", want: false},
		{slug: "grand-palace", name: "Grand  Palace!", want: false},
		{slug: "grand-palace", name: "Royal Gardens", want: true},
		{slug: "", name: "Grand Palace", want: true},
		{slug: "null", name: "Grand Palace", want: true},
	}

	for _, tt := range tests {
		if got := ShouldReallocate(tt.slug, tt.name); got != tt.want {
			t.Fatalf("ShouldReallocate(%q, %q) = %v, want %v", tt.slug, tt.name, got, tt.want)
		}
	}
}

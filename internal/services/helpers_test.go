package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name             string
		page, pageSize   int
		wantPage, wantSz int
	}{
		{"defaults kept", 1, 50, 1, 50},
		{"page zero clamps to one", 0, 50, 1, 50},
		{"negative page clamps to one", -3, 20, 1, 20},
		{"oversized page size capped", 2, 10000, 2, MaxPageSize},
		{"zero page size defaults", 1, 0, 1, DefaultPageSize},
		{"max page size kept", 1, 500, 1, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantSz, p.PageSize)
		})
	}
}

func TestPaginationTotalPagesAndOffset(t *testing.T) {
	p := NewPagination(3, 10)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
}

func TestGenerateSlug(t *testing.T) {
	tests := map[string]string{
		"Acme":                "acme",
		"  Café Crème  ":      "cafe-creme",
		"Hello, World!":       "hello-world",
		"--Already-slugged--": "already-slugged",
		"Équipe #42":          "equipe-42",
		"!!!":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, GenerateSlug(in), in)
	}
}

func TestColorValue(t *testing.T) {
	assert.Equal(t, "#ef4444", ColorValue("red", nil))
	assert.Equal(t, "#3b82f6", ColorValue("chartreuse", nil))
	assert.Equal(t, "#3b82f6", ColorValue("", nil))
	assert.Equal(t, "#ef444480", ColorValue("red", ptr(0.5)))
	assert.Equal(t, "#ef4444ff", ColorValue("red", ptr(1.0)))
	assert.Equal(t, "#ef444400", ColorValue("red", ptr(0.0)))
	assert.Len(t, Palette, 14)
}

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, "violet", NormalizeColor(" Violet "))
	assert.Equal(t, DefaultColor, NormalizeColor("magenta"))
}

func TestNormalizeEmail(t *testing.T) {
	got, err := normalizeEmail("  Bob@Example.COM ")
	assert.NoError(t, err)
	assert.Equal(t, "bob@example.com", got)

	_, err = normalizeEmail("not-an-email")
	assert.Error(t, err)
	_, err = normalizeEmail("Bob <bob@example.com>")
	assert.Error(t, err)
}

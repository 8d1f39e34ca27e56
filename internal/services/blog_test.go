package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "top-5-localities-in-mumbai", Slugify("Top 5 Localities in Mumbai"))
	assert.Equal(t, "rera-what-buyers-should-know", Slugify("RERA: What Buyers Should Know!"))
	assert.Equal(t, "plot-vs-flat", Slugify("  Plot vs. Flat  "))
	assert.Equal(t, "2025-market-outlook", Slugify("2025 Market Outlook"))
	assert.Equal(t, "", Slugify("!!!"))
}

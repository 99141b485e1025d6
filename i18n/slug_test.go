package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"":                        "",
		"Classic Abaya":           "classic-abaya",
		"  Summer -- Collection ": "summer-collection",
		"Café Crème":              "cafe-creme",
		"Kaftan #2 (Limited)":     "kaftan-2-limited",
		"عباية سوداء":             "عباية-سوداء",
		"snake_case stays":        "snake_case-stays",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

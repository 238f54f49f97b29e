package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "ETHDenver 2024", "ethdenver-2024"},
		{"extra whitespace", "  ethdenver   2024 ", "ethdenver-2024"},
		{"punctuation folds", "ETHDenver, 2024!", "ethdenver-2024"},
		{"already slug", "ethdenver-2024", "ethdenver-2024"},
		{"leading trailing separators", "--Devcon--", "devcon"},
		{"empty", "", ""},
		{"only punctuation", "!!! ???", ""},
		{"unicode dropped", "Café Meetup", "caf-meetup"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	// Differently-formatted spellings of the same name land on one slug.
	assert.Equal(t, Slugify("ETHDenver 2024"), Slugify("  ethdenver   2024 "))
}

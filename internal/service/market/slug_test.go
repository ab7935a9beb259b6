package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Serration", "serration"},
		{"spaces to underscores", "Abating Link", "abating_link"},
		{"punctuation stripped", "Vauban Prime Set!", "vauban_prime_set"},
		{"apostrophe", "Kavasa Prime Kubrow Collar", "kavasa_prime_kubrow_collar"},
		{"consecutive separators collapse", "A  -  B", "a_b"},
		{"leading and trailing trimmed", "  Gleaming Blight  ", "gleaming_blight"},
		{"digits kept", "Ayatan Anasa Sculpture 2", "ayatan_anasa_sculpture_2"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ItemSlug(tt.in))
		})
	}
}

func TestItemSlugIdempotent(t *testing.T) {
	inputs := []string{"Abating Link", "Primed Flow!", "  A  B  ", "x__y"}
	for _, in := range inputs {
		once := ItemSlug(in)
		assert.Equal(t, once, ItemSlug(once), "slug of %q not idempotent", in)
	}
}

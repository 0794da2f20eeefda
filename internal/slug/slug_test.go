package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Getting Started", "getting-started"},
		{"Hello World!", "hello-world"},
		{"Hello, World", "hello-world"},
		{"  --Leading and trailing--  ", "leading-and-trailing"},
		{"Crème Brûlée à la Carte", "creme-brulee-a-la-carte"},
		{"Straße über Øresund", "strasse-uber-oresund"},
		{"Don't Stop", "dont-stop"},
		{"Go 1.22 Release Notes", "go-1-22-release-notes"},
		{"multiple   spaces\tand\nlines", "multiple-spaces-and-lines"},
		{"Draft: PostgreSQL Best Practices", "draft-postgresql-best-practices"},
		{"Привет мир", "privet-mir"},
		{"Ελλάδα", "ellada"},
		{"Işık", "isik"},
		{"Tom & Jerry", "tom-and-jerry"},
		{"100% Coverage", "100-percent-coverage"},
		{"Pay in €", "pay-in-euro"},
		{"", ""},
		{"   ", ""},
		{"!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Derive(tc.in))
		})
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	title := "Understanding Drizzle ORM"
	assert.Equal(t, Derive(title), Derive(title))
	assert.Equal(t, Derive(title), Derive(Derive(title)))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "getting-started", Normalize("  Getting-Started "))
}

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML(t *testing.T) {
	m := NewMarkdown()

	cases := []struct {
		name     string
		src      string
		contains []string
		absent   []string
	}{
		{
			name:     "heading and emphasis",
			src:      "# Getting Started\n\nThis is **bold**.",
			contains: []string{`<h1 id="getting-started">Getting Started</h1>`, "<strong>bold</strong>"},
		},
		{
			name:     "gfm table",
			src:      "| a | b |\n|---|---|\n| 1 | 2 |\n",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "fenced code keeps language class",
			src:      "```go\nfmt.Println(1)\n```\n",
			contains: []string{`<code class="language-go">`},
		},
		{
			name:     "external links get rel and target",
			src:      "[docs](https://example.com)",
			contains: []string{`href="https://example.com"`, "nofollow", "noreferrer", "noopener", `target="_blank"`},
		},
		{
			name:   "script is stripped",
			src:    "hi <script>alert(1)</script>",
			absent: []string{"<script"},
		},
		{
			name:   "javascript urls are dropped",
			src:    "[x](javascript:alert(1))",
			absent: []string{"javascript:"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := m.HTML(tc.src)
			require.NoError(t, err)
			for _, s := range tc.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tc.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

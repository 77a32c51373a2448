package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		notWant []string
	}{
		{
			name: "heading and emphasis",
			body: "## Steps\n\nRun **make**.",
			want: []string{"<h2>Steps</h2>", "<strong>make</strong>"},
		},
		{
			name: "gfm strikethrough and task list",
			body: "~~old~~\n\n- [x] done\n- [ ] todo",
			want: []string{"<del>old</del>", `type="checkbox"`},
		},
		{
			name: "gfm table",
			body: "| a | b |\n|---|---|\n| 1 | 2 |",
			want: []string{"<table>", "<td>1</td>"},
		},
		{
			name:    "raw html is dropped",
			body:    "hello <script>alert(1)</script>",
			want:    []string{"raw HTML omitted"},
			notWant: []string{"<script>"},
		},
		{
			name: "empty body",
			body: "",
			want: []string{"<p>No description available</p>"},
		},
		{
			name: "whitespace body",
			body: " \n\t",
			want: []string{"<p>No description available</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderMarkdown(tt.body)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, string(got), w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, string(got), nw)
			}
		})
	}
}

package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigx-cli/internal/dashboard"
)

func TestPositionsPanel_ClassifiedCount(t *testing.T) {
	zero, three := 0, 3
	tests := []struct {
		name       string
		classified *int
		want       string
	}{
		{"absent", nil, ""},
		{"zero", &zero, ""},
		{"some", &three, "Events classified: <strong>3</strong>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := dashboard.View{
				ImportSummary: &dashboard.ImportSummary{Imported: 5, Duplicates: 2, Classified: tt.classified},
			}

			var buf bytes.Buffer
			require.NoError(t, pageTmpl.ExecuteTemplate(&buf, "positions", view))
			out := buf.String()

			assert.Contains(t, out, "Imported: <strong>5</strong>")
			if tt.want == "" {
				assert.NotContains(t, out, "Events classified")
				return
			}
			assert.Contains(t, out, tt.want)
		})
	}
}

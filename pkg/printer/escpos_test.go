package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		budget int
		want   string
	}{
		{
			name:   "short name unchanged",
			input:  "Napa",
			budget: 18,
			want:   "Napa",
		},
		{
			name:   "name at budget unchanged",
			input:  strings.Repeat("a", 18),
			budget: 18,
			want:   strings.Repeat("a", 18),
		},
		{
			name:   "long name shortened with marker",
			input:  "Amoxicillin Trihydrate 500mg",
			budget: 18,
			want:   "Amoxicillin Trihy..",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateName(tt.input, tt.budget))
		})
	}
}

func TestKeyValueAlignment(t *testing.T) {
	doc := NewDocument(32)
	out := string(doc.KeyValue("Subtotal:", "100.00").Bytes())
	out = strings.TrimPrefix(out, string([]byte{ESC, '@'}))
	line := strings.TrimSuffix(out, "\n")

	assert.Len(t, line, 32)
	assert.True(t, strings.HasPrefix(line, "Subtotal:"))
	assert.True(t, strings.HasSuffix(line, "100.00"))
}

func TestItemLines(t *testing.T) {
	doc := NewDocument(32)
	out := string(doc.ItemLines("Paracetamol 500mg", 2, 50.00, 100.00).Bytes())

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "Paracetamol 500mg")

	detail := lines[1]
	assert.Len(t, detail, 32)
	assert.True(t, strings.HasPrefix(detail, " 2 x 50.00"))
	assert.True(t, strings.HasSuffix(detail, "100.00"))
}

func TestItemLinesShortensLongNames(t *testing.T) {
	doc := NewDocument(32)
	out := string(doc.ItemLines("Amoxicillin Trihydrate 500mg Capsule", 1, 8.00, 8.00).Bytes())

	assert.Contains(t, out, "Amoxicillin Trihy..")
	assert.NotContains(t, out, "Trihydrate")
}

func TestRule(t *testing.T) {
	doc := NewDocument(32)
	out := string(doc.Rule().Bytes())
	assert.Contains(t, out, strings.Repeat("-", 32)+"\n")
}

func TestDocumentDefaultsWidth(t *testing.T) {
	doc := NewDocument(0)
	out := string(doc.Rule().Bytes())
	assert.Contains(t, out, strings.Repeat("-", 32))
}

package reporting

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBag_HasErrors(t *testing.T) {
	var b Bag
	assert.False(t, b.HasErrors())
	b.Add(Diagnostic{Line: 1, Message: "boom"})
	assert.True(t, b.HasErrors())
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Line: 3, Message: "Unexpected character."}
	assert.Equal(t, "[line 3] Error: Unexpected character.", d.String())

	withWhere := Diagnostic{Line: 3, Where: "x", Message: "Expect ';'."}
	assert.Equal(t, "[line 3] Error at 'x': Expect ';'.", withWhere.String())
}

func TestBag_Fprint(t *testing.T) {
	var b Bag
	b.Add(Diagnostic{Line: 2, Message: "Unterminated string."})

	var out bytes.Buffer
	b.Fprint(&out)
	assert.Contains(t, out.String(), "[line 2]")
	assert.Contains(t, out.String(), "Unterminated string.")
}

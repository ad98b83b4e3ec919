package pkg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("writer is closed")
}

func TestCombinedWriter_Write(t *testing.T) {
	out1 := &strings.Builder{}
	out1.WriteString("existing: ")
	out2 := &strings.Builder{}

	cw := NewCombinedWriter(out1, out2)
	require.NotNil(t, cw)

	n, err := cw.Write([]byte("first"))
	require.NoError(t, err)
	assert.Equal(t, 2*len("first"), n)
	n, err = cw.Write([]byte("second"))
	require.NoError(t, err)
	assert.Equal(t, 2*len("second"), n)

	assert.Equal(t, "existing: firstsecond", out1.String())
	assert.Equal(t, "firstsecond", out2.String())
}

func TestCombinedWriter_KeepsWritingPastFailure(t *testing.T) {
	out := &strings.Builder{}
	cw := NewCombinedWriter(failingWriter{}, out)

	n, err := cw.Write([]byte("payload"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writer is closed")

	// the healthy writer still received the payload
	assert.Equal(t, len("payload"), n)
	assert.Equal(t, "payload", out.String())
}

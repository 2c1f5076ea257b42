package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/MillPool/internal/model"
)

func TestRenderChart_HTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, buildTestPool(), model.DefaultPoolSettings()))

	out := buf.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "Sheet utilization")
	assert.Contains(t, out, "Sheet 2")
}

func TestRenderChart_EmptyPool(t *testing.T) {
	var buf bytes.Buffer
	err := RenderChart(&buf, model.Pool{}, model.DefaultPoolSettings())
	assert.ErrorIs(t, err, model.ErrEmptyPool)
	assert.Zero(t, buf.Len())
}

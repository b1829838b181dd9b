package view

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents/html"
)

type ctxKey struct{}

func TestAdapters(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, "from-ctx")

	inner := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, ctx.Value(ctxKey{}).(string))
		return err
	})
	node := g.Div(AdaptTemplToGomponent(ctx, inner))

	var buf bytes.Buffer
	require.NoError(t, AdaptGomponentToTempl(node).Render(context.Background(), &buf))
	assert.Equal(t, "<div>from-ctx</div>", buf.String())
}

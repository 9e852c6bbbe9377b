package rendering

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func TestUniversalRenderer_RenderComponent(t *testing.T) {
	r := NewUniversalRenderer()
	ctx := context.Background()

	out, err := r.RenderComponent(ctx, h.Span(g.Text("node")))
	require.NoError(t, err)
	assert.Equal(t, "<span>node</span>", string(out))

	tc := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<b>templ</b>")
		return err
	})
	out, err = r.RenderComponent(ctx, tc)
	require.NoError(t, err)
	assert.Equal(t, "<b>templ</b>", string(out))

	_, err = r.RenderComponent(ctx, 42)
	assert.ErrorContains(t, err, "unsupported component type int")
}

func TestUniversalRenderer_EchoRender(t *testing.T) {
	e := echo.New()
	e.Renderer = NewUniversalRenderer()
	e.GET("/", func(c echo.Context) error {
		return c.Render(http.StatusOK, "", h.P(g.Text("ok")))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>ok</p>", rec.Body.String())
	assert.Equal(t, echo.MIMETextHTMLCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
}

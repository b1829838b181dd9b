package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/joinform/internal/i18n"
	"github.com/nfrund/joinform/internal/view"
	"github.com/nfrund/joinform/internal/view/dto/join"
	"github.com/nfrund/joinform/web/src/templates/layouts"
	"golang.org/x/text/language"
)

// RegisteredContent is the confirmation shown after a registration. It is
// a templ component so it can be reused by templ layouts.
func RegisteredContent(data join.RegisteredData) templ.Component {
	status := view.AdaptGomponentToTempl(layouts.StatusMessages(data.Status))
	heading := templ.EscapeString(data.Printer.Sprintf(i18n.LabelRegistered))
	welcome := templ.EscapeString(data.Printer.Sprintf(i18n.LabelWelcome))

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="max-w-xl mx-auto bg-white shadow rounded-xl p-8"><h1 class="text-3xl font-bold mb-4">`+heading+`</h1>`); err != nil {
			return err
		}
		if err := status.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<p>`+welcome+`</p></div>`)
		return err
	})
}

// RegisteredPage renders the full confirmation document.
func RegisteredPage(ctx context.Context, data join.RegisteredData, lang language.Tag) cmp.Node {
	return layouts.Base(
		data.Printer.Sprintf(i18n.LabelRegistered),
		lang,
		g.Div(view.AdaptTemplToGomponent(ctx, RegisteredContent(data))),
	)
}

package layouts

import (
	"golang.org/x/text/language"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	c "maragu.dev/gomponents/components"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/joinform/internal/view"
)

// Base wraps page content in the HTML document shell.
func Base(title string, lang language.Tag, body ...cmp.Node) cmp.Node {
	return c.HTML5(c.HTML5Props{
		Title:    CalculateTitle(title),
		Language: lang.String(),
		Head: []cmp.Node{
			g.Link(g.Rel("stylesheet"), g.Href("/static/css/app.css")),
			g.Script(g.Src("https://unpkg.com/htmx.org@2.0.4"), g.Defer()),
		},
		Body: []cmp.Node{
			hx.Boost("true"),
			g.Main(g.Class("container mx-auto p-8"), cmp.Group(body)),
		},
	})
}

// StatusMessages renders queued status messages, if any.
func StatusMessages(messages []view.StatusMessage) cmp.Node {
	if len(messages) == 0 {
		return cmp.Group(nil)
	}
	return g.Div(g.ID("status-messages"),
		cmp.Map(messages, func(m view.StatusMessage) cmp.Node {
			return g.Div(
				g.Class("status status-"+m.Kind),
				g.Role("status"),
				cmp.Text(m.Text),
			)
		}),
	)
}

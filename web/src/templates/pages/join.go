package pages

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/joinform/internal/i18n"
	"github.com/nfrund/joinform/internal/joinfields"
	"github.com/nfrund/joinform/internal/joinform"
	"github.com/nfrund/joinform/internal/view/dto/join"
	"github.com/nfrund/joinform/web/src/templates/layouts"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// JoinContent renders the registration form.
func JoinContent(data join.FormData) cmp.Node {
	p := data.Printer
	return g.Div(
		g.Class("max-w-xl mx-auto bg-white shadow rounded-xl p-8"),
		g.H1(g.Class("text-3xl font-bold mb-4"), cmp.Text(p.Sprintf(i18n.LabelRegistrationForm))),
		layouts.StatusMessages(data.Status),
		g.Form(
			g.ID("join-form"),
			g.Method("post"),
			g.Action(data.Action),
			// Validation failures come back as 4xx pages, which htmx would not swap.
			hx.Boost("false"),
			g.FieldSet(
				g.Legend(cmp.Text(p.Sprintf(i18n.LabelPersonalDetails))),
				cmp.Map(data.Form.Fields, func(f joinfields.Field) cmp.Node {
					return fieldNode(f, data.Form, p)
				}),
			),
			g.Button(
				g.Type("submit"),
				g.Name("form.actions.register"),
				g.Value("register"),
				cmp.Text(p.Sprintf(i18n.LabelRegister)),
			),
		),
	)
}

func fieldNode(f joinfields.Field, form *joinform.Form, p *message.Printer) cmp.Node {
	name := string(f.Name)
	id := "form-widgets-" + name

	if f.Widget == joinfields.WidgetNotice {
		return g.Div(g.ID(id), g.Class("field notice"), g.P(cmp.Text(f.Description)))
	}

	errMsg, invalid := form.Errors[f.Name]
	label := g.Label(g.For(id), cmp.Text(f.Title),
		cmp.If(f.Required, g.Span(g.Class("required"), g.Title(p.Sprintf(i18n.LabelRequired)), cmp.Text("*"))),
	)
	help := cmp.If(f.Description != "", g.P(g.Class("formHelp"), cmp.Text(f.Description)))
	fieldErr := cmp.If(invalid, g.P(g.Class("field-error"), cmp.Text(errMsg)))

	var input cmp.Node
	switch f.Widget {
	case joinfields.WidgetCheckbox:
		return g.Div(g.Class("field"),
			g.Input(g.Type("checkbox"), g.ID(id), g.Name(name), g.Value("on"), cmp.If(form.MailMe, g.Checked())),
			label, help, fieldErr,
		)
	case joinfields.WidgetPassword:
		input = g.Input(g.Type("password"), g.ID(id), g.Name(name), g.AutoComplete("new-password"),
			cmp.If(f.Required, g.Required()))
	case joinfields.WidgetTextArea:
		input = g.Textarea(g.ID(id), g.Name(name), g.Rows("5"), cmp.Text(form.Values[f.Name]))
	default:
		inputType := "text"
		if f.Name == joinfields.Email {
			inputType = "email"
		}
		input = g.Input(g.Type(inputType), g.ID(id), g.Name(name), g.Value(form.Values[f.Name]),
			cmp.If(f.Required, g.Required()), cmp.If(f.ReadOnly, g.ReadOnly()))
	}

	class := "field"
	if invalid {
		class += " error"
	}
	return g.Div(g.Class(class), label, help, fieldErr, input)
}

// JoinPage renders the full join form document.
func JoinPage(data join.FormData, lang language.Tag) cmp.Node {
	return layouts.Base(data.Printer.Sprintf(i18n.LabelRegistrationForm), lang, JoinContent(data))
}

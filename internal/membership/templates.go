package membership

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	webtemplates "github.com/nfrund/joinform/web/src/templates"
)

type notificationData struct {
	Fullname string
	Username string
	Password string
	LoginURL string
}

type notificationTemplates struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

func loadNotificationTemplates() (*notificationTemplates, error) {
	text, err := texttemplate.ParseFS(webtemplates.FS, "email/registration.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse text email template: %w", err)
	}
	html, err := htmltemplate.ParseFS(webtemplates.FS, "email/registration.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse html email template: %w", err)
	}
	return &notificationTemplates{text: text, html: html}, nil
}

func (t *notificationTemplates) render(data notificationData) (text, html string, err error) {
	var tb, hb bytes.Buffer
	if err := t.text.Execute(&tb, data); err != nil {
		return "", "", fmt.Errorf("render text email: %w", err)
	}
	if err := t.html.Execute(&hb, data); err != nil {
		return "", "", fmt.Errorf("render html email: %w", err)
	}
	return tb.String(), hb.String(), nil
}

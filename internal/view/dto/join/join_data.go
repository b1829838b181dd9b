package join

import (
	"github.com/nfrund/joinform/internal/joinform"
	"github.com/nfrund/joinform/internal/view"
	"golang.org/x/text/message"
)

// FormData is the view model for the join form page.
type FormData struct {
	Form    *joinform.Form
	Status  []view.StatusMessage
	Action  string
	Printer *message.Printer
}

// RegisteredData is the view model for the confirmation page.
type RegisteredData struct {
	Status  []view.StatusMessage
	Printer *message.Printer
}

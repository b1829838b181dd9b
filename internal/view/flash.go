package view

import (
	"log/slog"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const statusSessionName = "status-messages"

// Status message kinds.
const (
	StatusInfo    = "info"
	StatusWarning = "warning"
	StatusError   = "error"
)

// StatusMessage is a single queued message shown on the next page.
type StatusMessage struct {
	Kind string
	Text string
}

// FlashData holds the status messages read from the session, by kind.
type FlashData struct {
	Info    []string
	Warning []string
	Error   []string
}

// Messages returns the messages in display order: errors first.
func (f FlashData) Messages() []StatusMessage {
	out := make([]StatusMessage, 0, len(f.Error)+len(f.Warning)+len(f.Info))
	for _, m := range f.Error {
		out = append(out, StatusMessage{Kind: StatusError, Text: m})
	}
	for _, m := range f.Warning {
		out = append(out, StatusMessage{Kind: StatusWarning, Text: m})
	}
	for _, m := range f.Info {
		out = append(out, StatusMessage{Kind: StatusInfo, Text: m})
	}
	return out
}

// AddStatusMessage queues a message of the given kind for the next page
// the member sees.
func AddStatusMessage(c echo.Context, kind, message string) error {
	sess, err := session.Get(statusSessionName, c)
	if err != nil {
		return err
	}
	sess.AddFlash(message, kind)
	return sess.Save(c.Request(), c.Response())
}

// GetFlashData retrieves and clears the queued status messages.
func GetFlashData(c echo.Context) FlashData {
	sess, err := session.Get(statusSessionName, c)
	if err != nil {
		slog.WarnContext(c.Request().Context(), "could not read status messages", "error", err)
		return FlashData{}
	}

	data := FlashData{
		Info:    toStrings(sess.Flashes(StatusInfo)),
		Warning: toStrings(sess.Flashes(StatusWarning)),
		Error:   toStrings(sess.Flashes(StatusError)),
	}

	// Flashes() clears the values; save to persist the clearing.
	if len(data.Info)+len(data.Warning)+len(data.Error) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}

func toStrings(flashes []any) []string {
	if len(flashes) == 0 {
		return nil
	}
	out := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

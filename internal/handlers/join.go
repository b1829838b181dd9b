package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/joinform/internal/domain"
	"github.com/nfrund/joinform/internal/i18n"
	"github.com/nfrund/joinform/internal/joinfields"
	"github.com/nfrund/joinform/internal/joinform"
	"github.com/nfrund/joinform/internal/metrics"
	"github.com/nfrund/joinform/internal/middleware"
	"github.com/nfrund/joinform/internal/pubsub"
	"github.com/nfrund/joinform/internal/registration"
	"github.com/nfrund/joinform/internal/rendering"
	"github.com/nfrund/joinform/internal/view"
	"github.com/nfrund/joinform/internal/view/dto/join"
	"github.com/nfrund/joinform/web/src/templates/pages"
	"golang.org/x/text/message"
)

// JoinHandler serves the join form and the registration confirmation.
type JoinHandler struct {
	site     domain.SiteConfigProvider
	service  *registration.Service
	binder   *joinform.Binder
	renderer rendering.Renderer
	metrics  *metrics.Metrics
	joinPath string
}

// NewJoinHandler creates a JoinHandler. m may be nil.
func NewJoinHandler(site domain.SiteConfigProvider, service *registration.Service, renderer rendering.Renderer, m *metrics.Metrics, joinPath string) *JoinHandler {
	return &JoinHandler{
		site:     site,
		service:  service,
		binder:   joinform.NewBinder(),
		renderer: renderer,
		metrics:  m,
		joinPath: joinPath,
	}
}

// fields computes the form fields from the current site settings.
func (h *JoinHandler) fields() ([]joinfields.Field, domain.SiteConfig) {
	cfg := h.site.Current()
	return joinfields.ForSite(cfg.JoinFormFields, cfg.ValidateEmail), cfg
}

// JoinGet renders an empty join form.
func (h *JoinHandler) JoinGet(c echo.Context) error {
	fields, _ := h.fields()
	p := printer(c)
	form := joinform.New(fields)
	return h.renderForm(c, http.StatusOK, form, view.GetFlashData(c).Messages(), p)
}

// JoinPost validates the submission and runs it through registration.
func (h *JoinHandler) JoinPost(c echo.Context) error {
	start := time.Now()
	ctx := pubsub.WithCorrelationID(c.Request().Context(), c.Response().Header().Get(echo.HeaderXRequestID))
	logger := middleware.FromContext(ctx)
	p := printer(c)

	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}

	fields, cfg := h.fields()
	form, sub := h.binder.Bind(fields, params, p)
	if !form.Valid() {
		status := []view.StatusMessage{{Kind: view.StatusError, Text: p.Sprintf(i18n.MsgFixErrors)}}
		return h.renderForm(c, http.StatusUnprocessableEntity, form, status, p)
	}

	outcome, err := h.service.Submit(ctx, sub, cfg.ValidateEmail, p)
	if h.metrics != nil {
		h.metrics.ObserveSubmission(start)
	}
	if err != nil {
		logger.Error("Join submission failed", "username", sub.Username, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "registration failed")
	}
	if h.metrics != nil {
		h.metrics.RecordOutcome(outcome.State.String())
	}
	logger.Info("Join submission handled", "username", sub.Username, "state", outcome.State.String())

	if outcome.State.Halts() {
		status := []view.StatusMessage{{Kind: string(outcome.MessageType), Text: outcome.Message}}
		return h.renderForm(c, haltStatus(outcome.State), form, status, p)
	}

	if err := view.AddStatusMessage(c, string(outcome.MessageType), outcome.Message); err != nil {
		logger.Warn("Could not queue status message", "error", err)
	}
	return c.Redirect(http.StatusSeeOther, outcome.Redirect)
}

// RegisteredGet renders the confirmation page with queued status messages.
func (h *JoinHandler) RegisteredGet(c echo.Context) error {
	p := printer(c)
	data := join.RegisteredData{
		Status:  view.GetFlashData(c).Messages(),
		Printer: p,
	}
	lang := i18n.Match(c.Request().Header.Get("Accept-Language"))
	return h.renderer.RenderPage(c, http.StatusOK, pages.RegisteredPage(c.Request().Context(), data, lang))
}

// FieldsGet returns the current field order as JSON.
func (h *JoinHandler) FieldsGet(c echo.Context) error {
	fields, cfg := h.fields()
	return c.JSON(http.StatusOK, NewFieldsResponse(fields, cfg))
}

func (h *JoinHandler) renderForm(c echo.Context, status int, form *joinform.Form, messages []view.StatusMessage, p *message.Printer) error {
	data := join.FormData{
		Form:    form,
		Status:  messages,
		Action:  h.joinPath,
		Printer: p,
	}
	lang := i18n.Match(c.Request().Header.Get("Accept-Language"))
	return h.renderer.RenderPage(c, status, pages.JoinPage(data, lang))
}

func haltStatus(state registration.State) int {
	switch state {
	case registration.InvalidInput:
		return http.StatusUnprocessableEntity
	case registration.ConflictFailure:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func printer(c echo.Context) *message.Printer {
	return i18n.ForRequest(c.Request().Header.Get("Accept-Language"))
}

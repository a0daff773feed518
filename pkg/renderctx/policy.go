package renderctx

import (
	"fmt"
	"net/http"
)

// StatusError signals the host to answer with a bare HTTP status when no
// tenant could be resolved.
type StatusError struct {
	Code int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("tenant not found: status %d", e.Code)
}

// RedirectError signals the host to redirect when no tenant could be
// resolved. It carries exactly the URL and code the policy was built with.
type RedirectError struct {
	URL  string
	Code int
}

// Error implements the error interface.
func (e *RedirectError) Error() string {
	return fmt.Sprintf("tenant not found: redirect %d to %s", e.Code, e.URL)
}

// NotFoundAction names the disposition taken when resolution yields no
// tenant.
type NotFoundAction string

const (
	// ActionStatus raises a StatusError for the host to translate.
	ActionStatus NotFoundAction = "status"
	// ActionRedirect raises a RedirectError for the host to translate.
	ActionRedirect NotFoundAction = "redirect"
	// ActionRender proceeds rendering with an explicitly nil tenant.
	ActionRender NotFoundAction = "render"
	// ActionCustom invokes a caller-supplied handler, then proceeds.
	ActionCustom NotFoundAction = "custom"
)

// NotFoundHandler is the custom-policy hook. It receives the request's
// two configuration views and may mutate them.
type NotFoundHandler func(rc *RenderContext, payload *ClientPayload) error

// NotFoundPolicy decides what happens when a request resolves to no
// tenant. Construct with one of the NotFound* helpers.
type NotFoundPolicy struct {
	Action       NotFoundAction
	StatusCode   int
	RedirectURL  string
	RedirectCode int
	Handler      NotFoundHandler
}

// NotFoundStatus answers unresolvable requests with an HTTP status,
// 404 by default.
func NotFoundStatus(code int) NotFoundPolicy {
	if code == 0 {
		code = http.StatusNotFound
	}
	return NotFoundPolicy{Action: ActionStatus, StatusCode: code}
}

// NotFoundRedirect sends unresolvable requests to url with the given
// redirect code, 302 by default.
func NotFoundRedirect(url string, code int) NotFoundPolicy {
	if code == 0 {
		code = http.StatusFound
	}
	return NotFoundPolicy{Action: ActionRedirect, RedirectURL: url, RedirectCode: code}
}

// NotFoundRender renders with a nil tenant.
func NotFoundRender() NotFoundPolicy {
	return NotFoundPolicy{Action: ActionRender}
}

// NotFoundCustom delegates to a caller-supplied handler and proceeds.
func NotFoundCustom(handler NotFoundHandler) NotFoundPolicy {
	return NotFoundPolicy{Action: ActionCustom, Handler: handler}
}

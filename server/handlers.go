package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ZaguanLabs/gotrans"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// ErrMalformedPath is returned for request paths that are not
// /translate/<word>/to/<language>.
var ErrMalformedPath = errors.New("malformed translate path")

const (
	bodyBadRequest    = "bad request"
	bodyNoTranslation = "no translation available"
)

type translationResponse struct {
	Word        string           `json:"word"`
	Language    string           `json:"language"`
	Translation string           `json:"translation"`
	Engine      gotrans.EngineID `json:"engine,omitempty"`
	Cached      bool             `json:"cached"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// parseTranslatePath splits an escaped path of the form
// /translate/<word>/to/<language> and percent-decodes both segments.
// The word may be empty; the language may not.
func parseTranslatePath(escaped string) (word, lang string, err error) {
	segs := strings.Split(strings.TrimPrefix(escaped, "/"), "/")
	if len(segs) != 4 || segs[0] != "translate" || segs[2] != "to" {
		return "", "", ErrMalformedPath
	}

	word, err = url.PathUnescape(segs[1])
	if err != nil {
		return "", "", ErrMalformedPath
	}
	lang, err = url.PathUnescape(segs[3])
	if err != nil || lang == "" {
		return "", "", ErrMalformedPath
	}
	return word, lang, nil
}

func (s *Server) translate(c echo.Context) error {
	word, lang, err := parseTranslatePath(c.Request().URL.EscapedPath())
	if err != nil {
		return s.badRequest(c)
	}

	ctx := c.Request().Context()
	if s.config.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.LookupTimeout)
		defer cancel()
	}

	tr, ok := s.translator.Lookup(ctx, lang, word)
	if !ok {
		s.logger.WithFields(logrus.Fields{
			"lang": lang,
			"word": word,
		}).Debug("no translation available")

		if wantsJSON(c.Request().Header.Get(echo.HeaderAccept)) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: bodyNoTranslation})
		}
		return c.String(http.StatusNotFound, bodyNoTranslation)
	}

	if wantsJSON(c.Request().Header.Get(echo.HeaderAccept)) {
		return c.JSON(http.StatusOK, translationResponse{
			Word:        word,
			Language:    lang,
			Translation: tr.Text,
			Engine:      tr.Engine,
			Cached:      tr.Cached,
		})
	}
	return c.String(http.StatusOK, tr.Text)
}

func (s *Server) badRequest(c echo.Context) error {
	if wantsJSON(c.Request().Header.Get(echo.HeaderAccept)) {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: bodyBadRequest})
	}
	return c.String(http.StatusUnprocessableEntity, bodyBadRequest)
}

// errorHandler answers unknown routes and methods with 422 and leaves
// everything else to echo.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) && (he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed) {
		if err := s.badRequest(c); err != nil {
			s.logger.WithError(err).Warn("failed to write response")
		}
		return
	}

	s.echo.DefaultHTTPErrorHandler(err, c)
}

// wantsJSON reports whether the Accept header lists application/json ahead
// of text/plain and wildcards. Entries with q=0 are skipped; other q-values
// are ignored and list order decides.
func wantsJSON(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mediaType, params, _ := strings.Cut(part, ";")
		if refused(params) {
			continue
		}
		switch strings.TrimSpace(mediaType) {
		case echo.MIMEApplicationJSON:
			return true
		case echo.MIMETextPlain, "text/*", "*/*":
			return false
		}
	}
	return false
}

// refused reports whether media-range params carry q=0.
func refused(params string) bool {
	for _, p := range strings.Split(params, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return err == nil && q == 0
	}
	return false
}

func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string)
	overall := "healthy"
	for _, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		if err := hc.Check(ctx); err != nil {
			s.logger.WithError(err).WithField("dependency", hc.Name()).Warn("health check failed")
			deps[hc.Name()] = "unhealthy"
			overall = "degraded"
		} else {
			deps[hc.Name()] = "healthy"
		}
	}

	code := http.StatusOK
	if overall != "healthy" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, map[string]interface{}{
		"status":       overall,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"version":      gotrans.FullVersion(),
		"service":      gotrans.Name,
		"dependencies": deps,
	})
}

func (s *Server) metricsEndpoint(c echo.Context) error {
	promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}).ServeHTTP(c.Response(), c.Request())
	return nil
}

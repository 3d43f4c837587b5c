package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"evenza/internal/domain"
)

const (
	codeUnauthorized = "unauthorized"
	codeForbidden    = "forbidden"
	codeBadRequest   = "bad_request"
	codeInternal     = "internal_error"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// statusFor maps a domain error to its HTTP status and code.
func statusFor(err error) (int, string) {
	if errors.Is(err, domain.ErrReservationNotOwned) {
		return http.StatusForbidden, domain.Code(err)
	}
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound, domain.Code(err)
	case domain.KindInvalidState, domain.KindValidation:
		return http.StatusBadRequest, domain.Code(err)
	case domain.KindConflict:
		return http.StatusConflict, domain.Code(err)
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	body := errorBody{Error: code, Message: s.tr.T(localeFrom(r.Context()), code, nil)}
	switch {
	case status == http.StatusInternalServerError:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	case domain.IsValidation(err):
		body.Details = err.Error()
	}
	writeJSON(w, status, body)
}

func (s *Server) writeCode(w http.ResponseWriter, r *http.Request, status int, code string) {
	writeJSON(w, status, errorBody{Error: code, Message: s.tr.T(localeFrom(r.Context()), code, nil)})
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	writeJSON(w, http.StatusBadRequest, errorBody{
		Error:   codeBadRequest,
		Message: s.tr.T(localeFrom(r.Context()), codeBadRequest, nil),
		Details: err.Error(),
	})
}

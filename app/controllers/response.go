package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"postboard/app/errs"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Helper methods for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError writes err as the JSON error envelope. Errors that are not an
// *errs.HTTPError are reported as a bare 500.
func sendError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = errs.NewInternalServerError("").WithCause(err)
	}

	log := zerolog.Ctx(r.Context())
	if httpErr.Status >= http.StatusInternalServerError {
		log.Error().Err(httpErr.Unwrap()).Int("status", httpErr.Status).Msg(httpErr.Message)
	} else {
		log.Debug().Err(httpErr.Unwrap()).Int("status", httpErr.Status).Msg(httpErr.Message)
	}

	sendJSON(w, httpErr.Status, httpErr)
}

// WriteError is sendError for handlers outside this package.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	sendError(w, r, err)
}

// parseID reads the {id} route variable. Ids are positive and fit the
// INTEGER columns of the postgres schema; anything else is rejected with a
// 400 carrying message.
func parseID(r *http.Request, message string) (int, error) {
	raw, ok := mux.Vars(r)["id"]
	if !ok || raw == "" {
		return 0, errs.NewBadRequestError(message, nil)
	}

	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, errs.NewBadRequestError(message, nil).WithCause(err)
	}
	id := int(n)
	if id <= 0 {
		return 0, errs.NewBadRequestError(message, nil)
	}
	return id, nil
}

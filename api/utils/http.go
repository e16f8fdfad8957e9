// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/vechain/tokenfarm/builtin/reverts"
	"github.com/vechain/tokenfarm/log"
)

var logger = log.WithContext("pkg", "api")

// maxBodySize bounds request bodies. Every request of the API is a small JSON object.
const maxBodySize = 64 * 1024

// JSONContentType is the content type of every response body.
const JSONContentType = "application/json; charset=utf-8"

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

// BadRequest marks cause as the client's fault.
func BadRequest(cause error) error {
	return &httpError{cause, http.StatusBadRequest}
}

// NotFound marks cause as a missing resource.
func NotFound(cause error) error {
	return &httpError{cause, http.StatusNotFound}
}

// HandlerFunc is a http.HandlerFunc that may fail.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc responds the error f returns in plain text. Errors made by BadRequest or
// NotFound keep their status. A reverted farm operation is the caller's fault and answers 400.
// Anything else answers 500 and is logged.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		var he *httpError
		switch {
		case errors.As(err, &he):
			http.Error(w, err.Error(), he.status)
		case reverts.IsRevertErr(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			logger.Error("request failed", "method", r.Method, "uri", r.RequestURI, "err", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// ParseJSON decodes a single JSON object, rejecting unknown fields and oversized bodies.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(io.LimitReader(r, maxBodySize))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON responds obj in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// M is a free form JSON object.
type M map[string]any

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/voidshard/jobgate/pkg/api/http/common"
	ie "github.com/voidshard/jobgate/pkg/errors"
)

var (
	errmap map[int][]error = map[int][]error{
		http.StatusBadRequest: []error{
			ie.ErrMalformedPayload,
			ie.ErrMissingCredential,
			ie.ErrInvalidPayload,
			ie.ErrInvalidArg,
		},
		http.StatusForbidden: []error{
			ie.ErrUnknownCredential,
		},
		http.StatusNotFound: []error{
			ie.ErrNotFound,
		},
		http.StatusServiceUnavailable: []error{
			ie.ErrQueueUnavailable,
		},
	}

	// errors we'll explain to the caller, even though they're the server's fault
	authoringErrors = []error{
		ie.ErrUnsupportedFieldType,
		ie.ErrAmbiguousType,
		ie.ErrModelNameCollision,
	}
)

// mapError returns the http status code for a given error from jobgate, or
// http.StatusInternalServerError if the error is not recognised.
func mapError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for code, errs := range errmap {
		for _, e := range errs {
			if errors.Is(err, e) {
				return code
			}
		}
	}
	return http.StatusInternalServerError
}

// toErrorResponse builds the body returned to the caller for an error.
// Internal details are never returned, except for schema authoring faults.
func toErrorResponse(err error) (int, *common.ErrorResponse) {
	code := mapError(err)

	invalid := &ie.InvalidPayloadError{}
	switch {
	case errors.As(err, &invalid):
		return code, &common.ErrorResponse{Error: strings.Join(invalid.Errors, "; "), Errors: invalid.Errors}
	case errors.Is(err, ie.ErrMalformedPayload):
		return code, &common.ErrorResponse{Error: common.MSG_INVALID_JSON}
	case errors.Is(err, ie.ErrMissingCredential):
		return code, &common.ErrorResponse{Error: common.MSG_MISSING_KEY}
	case errors.Is(err, ie.ErrUnknownCredential):
		return code, &common.ErrorResponse{Error: common.MSG_INVALID_KEY}
	case errors.Is(err, ie.ErrNotFound):
		return code, &common.ErrorResponse{Error: common.MSG_NOT_FOUND}
	case errors.Is(err, ie.ErrQueueUnavailable):
		return code, &common.ErrorResponse{Error: common.MSG_UNAVAILABLE}
	case code == http.StatusBadRequest:
		return code, &common.ErrorResponse{Error: err.Error()}
	}

	for _, e := range authoringErrors {
		if errors.Is(err, e) {
			return code, &common.ErrorResponse{Error: err.Error()}
		}
	}
	return code, &common.ErrorResponse{Error: common.MSG_INTERNAL_ERROR}
}

// writeError writes the error response for err.
func writeError(w http.ResponseWriter, err error) {
	code, body := toErrorResponse(err)
	writeJson(w, code, body)
}

// writeJson writes obj as the json body of a response with the given code.
func writeJson(w http.ResponseWriter, code int, obj interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(obj)
}

// readBody reads the body of a request, up to max bytes.
// This function writes an error to the writer if an error occurs, and returns the error.
func readBody(w http.ResponseWriter, r *http.Request, max int64) ([]byte, error) {
	if r.Body == nil {
		return []byte{}, nil
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, max))
	if err != nil {
		maxErr := &http.MaxBytesError{}
		if errors.As(err, &maxErr) {
			writeJson(w, http.StatusRequestEntityTooLarge, &common.ErrorResponse{Error: err.Error()})
		} else {
			writeJson(w, http.StatusBadRequest, &common.ErrorResponse{Error: common.MSG_INVALID_JSON})
		}
		return nil, fmt.Errorf("bad body: %v", err)
	}
	return data, nil
}

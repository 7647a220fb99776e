package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"retail-backoffice-api/pkg/apierror"

	"github.com/go-chi/chi/v5"
)

// readJSON decodes the request body into data, rejecting oversized bodies
// and trailing documents.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(data); err != nil {
		return err
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// urlID parses the {id} route parameter.
func urlID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.BadRequest("invalid id")
	}
	return id, nil
}

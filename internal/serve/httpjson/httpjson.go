// Package httpjson renders JSON HTTP responses.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

const contentType = "application/json; charset=utf-8"

// Render writes v to w as JSON with a 200 status code.
func Render(w http.ResponseWriter, v interface{}) {
	RenderStatus(w, http.StatusOK, v)
}

// RenderStatus writes v to w as JSON with the given status code. The body is
// marshaled before the header is written so an encoding failure can still
// produce a 500.
func RenderStatus(w http.ResponseWriter, statusCode int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logrus.Errorf("marshaling JSON response: %s", err)
		http.Error(w, `{"error": "An internal error occurred while processing this request."}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	if _, err = w.Write(body); err != nil {
		logrus.Errorf("writing JSON response: %s", err)
	}
}

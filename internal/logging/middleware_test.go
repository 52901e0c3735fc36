package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/courselight/courselight/internal/logging"
	"github.com/stretchr/testify/assert"
)

type StringAttr struct {
	Key   string
	Value string
}

func TestRequestLoggerMiddleware(t *testing.T) {
	run := func(request *http.Request) []StringAttr {
		t.Helper()

		buf := &bytes.Buffer{}
		middleware := logging.NewRequestLoggerMiddleware(slog.New(slog.NewJSONHandler(buf, nil)))

		logRequest := func(w http.ResponseWriter, r *http.Request) {
			logging.FromContext(r.Context()).Info("test")
		}

		w := httptest.NewRecorder()
		middleware(logRequest)(w, request)

		var logEntry map[string]interface{}
		err := json.Unmarshal(buf.Bytes(), &logEntry)
		assert.NoError(t, err)
		attrs := make([]StringAttr, 0)

		foundBase := 0
		for key, value := range logEntry {
			if key == "msg" {
				assert.Equal(t, "test", value)
				foundBase++
			} else if key == "level" {
				assert.Equal(t, "INFO", value)
				foundBase++
			} else if key == "time" {
				foundBase++
			} else if key == "correlationID" {
				assert.NotEmpty(t, value)
				foundBase++
			} else {
				attrs = append(attrs, StringAttr{Key: key, Value: value.(string)})
			}
		}

		assert.Equal(t, 4, foundBase)

		return attrs
	}

	t.Run("all props", func(t *testing.T) {
		requestUrl, err := url.Parse("http://example.com/v1/course/10/content")
		assert.NoError(t, err)

		attrs := run(&http.Request{
			URL:    requestUrl,
			Method: "GET",
			Header: http.Header{
				"User-Agent": []string{"user-agent/1.0"},
				"Cookie":     []string{"session=abc123"},
			},
		})

		assert.ElementsMatch(t, []StringAttr{
			{Key: "userAgent", Value: "user-agent/1.0"},
			{Key: "sessionPresent", Value: "true"},
			{Key: "methodPath", Value: "GET /v1/course/10/content"},
		}, attrs)
	})

	t.Run("bare request", func(t *testing.T) {
		requestUrl, err := url.Parse("http://example.com/v1/course/published")
		assert.NoError(t, err)

		attrs := run(&http.Request{
			URL:    requestUrl,
			Method: "POST",
		})

		assert.ElementsMatch(t, []StringAttr{
			{Key: "userAgent", Value: "<missing>"},
			{Key: "sessionPresent", Value: "false"},
			{Key: "methodPath", Value: "POST /v1/course/published"},
		}, attrs)
	})

	t.Run("without middleware", func(t *testing.T) {
		logging.FromContext(context.Background()).Info("don't crash when no logger in context")
	})
}

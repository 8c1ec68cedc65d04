package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type startKey struct{}

// ClientLogger logs outgoing requests and their status at debug level
type ClientLogger struct {
	Log logrus.FieldLogger
}

// Preprocess implementation
func (c *ClientLogger) Preprocess(req *http.Request) (*http.Request, error) {
	return req.WithContext(context.WithValue(req.Context(), startKey{}, time.Now())), nil
}

// Postprocess implementation
func (c *ClientLogger) Postprocess(resp *http.Response) (*http.Response, error) {
	if c.Log == nil || resp.Request == nil {
		return resp, nil
	}

	fields := logrus.Fields{
		"method": resp.Request.Method,
		"host":   resp.Request.URL.Host,
		"path":   resp.Request.URL.Path,
		"status": resp.StatusCode,
	}

	if started, ok := resp.Request.Context().Value(startKey{}).(time.Time); ok {
		fields["elapsed"] = time.Since(started).String()
	}

	c.Log.WithFields(fields).Debug("upstream request")

	return resp, nil
}

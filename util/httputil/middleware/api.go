// Package middleware provides http client middleware wrappers
package middleware

import "net/http"

// Client provides common interface for client-side http middleware
type Client interface {
	Preprocess(req *http.Request) (*http.Request, error)
	Postprocess(resp *http.Response) (*http.Response, error)
}

// Transport chains client middlewares around underlying round tripper.
// Preprocess runs in order, Postprocess runs in reverse order.
type Transport struct {
	Transport   http.RoundTripper
	Middlewares []Client
}

func (c *Transport) transport() http.RoundTripper {
	if c.Transport == nil {
		return http.DefaultTransport
	}

	return c.Transport
}

// RoundTrip implementation
func (c *Transport) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// RoundTripper must not modify caller's request
	req = req.Clone(req.Context())

	for _, m := range c.Middlewares {
		req, err = m.Preprocess(req)
		if err != nil {
			return nil, err
		}
	}

	resp, err = c.transport().RoundTrip(req)
	if err != nil {
		return nil, err
	}

	for i := len(c.Middlewares) - 1; i >= 0; i-- {
		resp, err = c.Middlewares[i].Postprocess(resp)
		if err != nil {
			return nil, err
		}
	}

	return resp, nil
}

// CloseIdleConnections closes idle connections of underlying transport, if supported
func (c *Transport) CloseIdleConnections() {
	type closeIdler interface {
		CloseIdleConnections()
	}

	if ci, ok := c.transport().(closeIdler); ok {
		ci.CloseIdleConnections()
	}
}

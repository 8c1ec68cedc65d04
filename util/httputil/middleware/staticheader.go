package middleware

import (
	"net/http"
	"net/textproto"
)

// ClientStaticHeaders provides middleware to statically add/set headers to outgoing http requests.
// Empty values are skipped, so optional credentials may be passed unconditionally.
type ClientStaticHeaders struct {
	Set map[string]string
	Add map[string][]string
}

// Preprocess implementation
func (c *ClientStaticHeaders) Preprocess(req *http.Request) (*http.Request, error) {
	for k, vs := range c.Add {
		key := textproto.CanonicalMIMEHeaderKey(k)

		for _, v := range vs {
			if v != "" {
				req.Header[key] = append(req.Header[key], v)
			}
		}
	}

	for k, v := range c.Set {
		if v == "" {
			continue
		}

		req.Header.Set(k, v)
	}

	return req, nil
}

// Postprocess noop
func (c *ClientStaticHeaders) Postprocess(resp *http.Response) (*http.Response, error) {
	return resp, nil
}

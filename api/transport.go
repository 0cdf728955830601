package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
	"golang.org/x/net/http/httpguts"
)

// headerTransport installs default headers on requests that do not already
// carry them
type headerTransport struct {
	base   http.RoundTripper
	header http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	for k, v := range t.header {
		if r.Header.Get(k) == "" {
			r.Header[k] = append([]string(nil), v...)
		}
	}
	return t.base.RoundTrip(r)
}

// buildDefaultHeaders validates the configured header values. An invalid or
// empty value is a caller error and never falls back.
func buildDefaultHeaders(opts *Options) (http.Header, error) {
	header := make(http.Header)
	if opts == nil || opts.Headers == nil {
		return header, nil
	}

	if auth := opts.Headers.Authorization; auth != nil {
		if *auth == "" {
			return nil, configError("invalid authorization header value: must not be empty")
		}
		if !isPrintableASCII(*auth) || !httpguts.ValidHeaderFieldValue(*auth) {
			return nil, configError("invalid authorization header value: must be printable ASCII")
		}
		header.Set("Authorization", *auth)
	}

	return header, nil
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// newHTTPClient builds the transport described by opts. Header errors are
// returned; builder errors (bad proxy URL) fall back to a default headerless
// client that keeps the configured timeout, unless opts.Strict is set.
func newHTTPClient(opts *Options, log zerolog.Logger) (*http.Client, error) {
	header, err := buildDefaultHeaders(opts)
	if err != nil {
		return nil, err
	}

	timeout := DefaultTimeout
	if opts != nil && opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	if opts != nil && opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err == nil && (proxyURL.Scheme == "" || proxyURL.Host == "") {
			err = &url.Error{Op: "parse", URL: opts.Proxy, Err: errMissingSchemeOrHost}
		}
		if err != nil {
			if opts.Strict {
				return nil, configError("invalid proxy URL: %w", err)
			}
			// the configured headers are discarded along with the proxy
			log.Warn().Err(err).Msg("transport build failed, falling back to default client without custom headers")
			return &http.Client{Timeout: timeout}, nil
		}
		base.Proxy = http.ProxyURL(proxyURL)
	}

	var rt http.RoundTripper = base
	if len(header) > 0 {
		rt = &headerTransport{base: base, header: header}
	}

	return &http.Client{
		Transport: rt,
		Timeout:   timeout,
	}, nil
}

var errMissingSchemeOrHost = errors.New("missing scheme or host")

var _ http.RoundTripper = (*headerTransport)(nil)

package api

import (
	"time"

	"github.com/rs/zerolog"
)

// network type constants
const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
	NetworkSignet  = "signet"
)

// Esplora endpoints
const (
	MainnetEsploraURL = "https://blockstream.info/api"
	TestnetEsploraURL = "https://blockstream.info/testnet/api"
	SignetEsploraURL  = "https://blockstream.info/signet/api"
)

// DefaultTimeout bounds every request issued by a client built with NewClient
const DefaultTimeout = 30 * time.Second

// EndpointFor returns the default Esplora URL for network, or false if the
// network is unknown
func EndpointFor(network string) (string, bool) {
	switch network {
	case NetworkMainnet:
		return MainnetEsploraURL, true
	case NetworkTestnet:
		return TestnetEsploraURL, true
	case NetworkSignet:
		return SignetEsploraURL, true
	}
	return "", false
}

// Options customizes the transport built by NewClient. A nil *Options builds
// a headerless client with DefaultTimeout.
type Options struct {
	Headers *HeadersOptions

	// Timeout overrides DefaultTimeout when positive
	Timeout time.Duration

	// Proxy is an optional proxy URL for every request
	Proxy string

	// Strict makes transport build failures fail NewClient instead of
	// falling back to a default headerless transport. The fallback keeps
	// Timeout and drops Headers and Proxy.
	Strict bool

	Logger *zerolog.Logger
}

// HeadersOptions are default headers installed on every request
type HeadersOptions struct {
	// Authorization must be non-empty printable ASCII; nil sends no header
	Authorization *string
}

// Ptr returns a pointer to v, for optional parameters and options
func Ptr[T any](v T) *T {
	return &v
}

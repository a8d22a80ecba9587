package client

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const defaultNodePort = 8010

var (
	ErrAddrNotURL    = errors.New("node-api's address is not a valid URL")
	ErrAddrBadScheme = errors.New("node-api's address should be over HTTP or HTTPS protocols")
)

// NormalizeAddr validates a node address and rewrites it to the canonical
// scheme://host:port form. The port defaults to 8010 when absent.
func NormalizeAddr(addr string) (string, error) {
	parsed, err := url.Parse(addr)
	if err != nil || parsed.Host == "" {
		return "", ErrAddrNotURL
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", ErrAddrBadScheme
	}

	port := parsed.Port()
	if port == "" {
		port = fmt.Sprintf("%d", defaultNodePort)
	}

	return fmt.Sprintf("%s://%s:%s", scheme, parsed.Hostname(), port), nil
}

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
)

// TransportError reports a failure to reach or talk to a node agent. The
// code/msg pairs are stable and consumed by the HTTP layer.
type TransportError struct {
	Code int
	Msg  string
	Raw  string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("node request failed (%d %s): %s", e.Code, e.Msg, e.Raw)
}

// NodeError carries an error payload the node agent returned; the control
// plane relays it to the caller untouched.
type NodeError struct {
	Payload json.RawMessage
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node returned error: %s", string(e.Payload))
}

// classifyTransport buckets a request failure. Connection refused is checked
// before the url.Error wrapper since the wrapper matches everything net/http
// returns.
func classifyTransport(err error) *TransportError {
	var netErr net.Error

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return &TransportError{Code: 111, Msg: "connection refused", Raw: err.Error()}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &TransportError{Code: 110, Msg: "connection timeout", Raw: err.Error()}
	default:
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return &TransportError{Code: 110, Msg: "request error", Raw: err.Error()}
		}
		return &TransportError{Code: 900, Msg: "unexpected error", Raw: err.Error()}
	}
}

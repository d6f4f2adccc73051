// Package transport opens the stream the protocol runs over: a plain TCP
// socket, or a WebSocket carrying one protocol line per text message.
package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"strings"
)

// Kind selects the transport.
type Kind string

const (
	KindTCP Kind = "tcp"
	KindWS  Kind = "ws"
)

// ParseKind validates a transport name.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindTCP, "":
		return KindTCP, nil
	case KindWS:
		return KindWS, nil
	}
	return "", fmt.Errorf("transport: unknown kind %q (want tcp or ws)", s)
}

// Dial connects to host:port.
func Dial(ctx context.Context, kind Kind, host, port string) (io.ReadWriteCloser, error) {
	switch kind {
	case KindWS:
		return DialWS(ctx, wsURL(host, port))
	default:
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
		if err != nil {
			return nil, fmt.Errorf("transport: dial: %w", err)
		}
		return conn, nil
	}
}

// wsURL accepts either a bare host or a full ws:// or wss:// URL.
func wsURL(host, port string) string {
	if strings.HasPrefix(host, "ws://") || strings.HasPrefix(host, "wss://") {
		return host
	}
	return "ws://" + net.JoinHostPort(host, port) + "/"
}

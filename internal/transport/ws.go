package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/gorilla/websocket"
)

// WSConn adapts a WebSocket to the newline-delimited stream the protocol
// expects. Every inbound message becomes one line; every outbound line is
// sent as one text message.
type WSConn struct {
	conn    *websocket.Conn
	pending []byte
	out     bytes.Buffer
}

// DialWS opens a WebSocket connection.
func DialWS(ctx context.Context, url string) (*WSConn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: ws dial %s: %w", url, err)
	}
	return NewWSConn(conn), nil
}

// NewWSConn wraps an established connection.
func NewWSConn(conn *websocket.Conn) *WSConn {
	return &WSConn{conn: conn}
}

// Read implements io.Reader. A normal close is reported as io.EOF.
func (c *WSConn) Read(p []byte) (int, error) {
	for len(c.pending) == 0 {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, io.EOF
			}
			return 0, err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		c.pending = data
	}

	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

// Write implements io.Writer. Bytes after the last newline wait for the
// rest of their line.
func (c *WSConn) Write(p []byte) (int, error) {
	c.out.Write(p)
	for {
		i := bytes.IndexByte(c.out.Bytes(), '\n')
		if i < 0 {
			return len(p), nil
		}
		line := c.out.Next(i + 1)
		if err := c.conn.WriteMessage(websocket.TextMessage, line[:i]); err != nil {
			return 0, err
		}
	}
}

// Close sends a close frame and closes the connection.
func (c *WSConn) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	//nolint:errcheck // Best-effort close frame
	c.conn.WriteMessage(websocket.CloseMessage, msg)
	return c.conn.Close()
}

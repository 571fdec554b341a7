package gateway

import (
	"context"
	"net"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/pkg/errors"
)

// transport is the thin websocket wrapper this package drives its state
// machine against. Grounded on discordgo/gateway.go's use of
// github.com/gobwas/ws for Dial and github.com/gobwas/ws/wsutil for framing,
// simplified to the high-level Read/WriteClientMessage helpers since this
// package doesn't need the teacher's hand-rolled buffer accumulation (that
// existed there to feed a zero-alloc gojay decoder on the hot path, a
// dependency this module doesn't carry forward — see DESIGN.md).
type transport struct {
	conn net.Conn
}

func dial(ctx context.Context, url string) (*transport, error) {
	conn, _, _, err := ws.Dial(ctx, url)
	if err != nil {
		return nil, errors.WithMessage(err, "ws.Dial")
	}
	return &transport{conn: conn}, nil
}

// readMessage blocks for the next complete text message, returning
// wsutil.ClosedError if the peer sent a close frame.
func (t *transport) readMessage() ([]byte, error) {
	data, err := wsutil.ReadServerText(t.conn)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (t *transport) writeMessage(data []byte) error {
	return wsutil.WriteClientMessage(t.conn, ws.OpText, data)
}

func (t *transport) writeClose(code CloseCode, reason string) error {
	frame := ws.NewCloseFrame(ws.NewCloseFrameBody(ws.StatusCode(code), reason))
	return ws.WriteFrame(t.conn, ws.MaskFrame(frame))
}

func (t *transport) close() error {
	return t.conn.Close()
}

// closeError extracts the close code from a read error, if the peer's error
// was in fact a graceful close frame.
func closeError(err error) (CloseCode, string, bool) {
	if ce, ok := err.(wsutil.ClosedError); ok {
		return CloseCode(ce.Code), ce.Reason, true
	}
	return 0, "", false
}

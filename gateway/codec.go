package gateway

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// Codec turns raw websocket message bytes into decoded payloads and back.
// The wire transport and payload compression are external collaborators per
// spec.md §1 ("the frame codec... treated as external collaborator via
// contract only"); Codec is that contract. jsonCodec is the default; a
// zlib-stream decorator is available for callers that ask for it via
// Options.Compressed, mirroring discordgo/gateway.go's zlib-stream support.
type Codec interface {
	// Decode parses a single inbound message into the shared event envelope.
	Decode(raw []byte, out *event) error
	// Encode serializes an outbound payload for the wire.
	Encode(op Opcode, data interface{}) ([]byte, error)
}

type jsonCodec struct{}

func (jsonCodec) Decode(raw []byte, out *event) error {
	return json.Unmarshal(raw, out)
}

func (jsonCodec) Encode(op Opcode, data interface{}) ([]byte, error) {
	return json.Marshal(struct {
		Op   Opcode      `json:"op"`
		Data interface{} `json:"d,omitempty"`
	}{Op: op, Data: data})
}

// zlibStreamCodec decodes messages that are individually zlib-compressed.
// Discord's actual "zlib-stream" transport-compress mode keeps a single
// zlib.Reader alive across the life of the connection; this package does not
// implement that shared-reader mode (transport.go has no zlib handling). This
// codec only handles the (off-by-default) case of a transport that hands
// this package one fully-buffered, individually compressed message at a time.
type zlibStreamCodec struct {
	jsonCodec
}

func (zlibStreamCodec) Decode(raw []byte, out *event) error {
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return errors.WithMessage(err, "zlib.NewReader")
	}
	defer zr.Close()
	decompressed, err := io.ReadAll(zr)
	if err != nil {
		return errors.WithMessage(err, "zlib read")
	}
	return json.Unmarshal(decompressed, out)
}

package gateway

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"testing"
)

func TestJSONCodecRoundTrip(t *testing.T) {
	c := jsonCodec{}
	raw, err := c.Encode(OpIdentify, map[string]int{"a": 1})
	if err != nil {
		t.Fatal(err)
	}

	var ev event
	if err := c.Decode(raw, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Op != OpIdentify {
		t.Fatalf("expected op %v, got %v", OpIdentify, ev.Op)
	}
}

func TestZlibStreamCodecDecodesCompressedMessage(t *testing.T) {
	body, err := json.Marshal(event{Op: OpDispatch, Type: "READY"})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(body); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	var ev event
	c := zlibStreamCodec{}
	if err := c.Decode(buf.Bytes(), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Type != "READY" {
		t.Fatalf("expected type READY, got %q", ev.Type)
	}
}

func TestZlibStreamCodecEncodeFallsBackToJSON(t *testing.T) {
	c := zlibStreamCodec{}
	raw, err := c.Encode(OpHeartbeat, 5)
	if err != nil {
		t.Fatal(err)
	}
	var ev event
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Op != OpHeartbeat {
		t.Fatalf("expected op %v, got %v", OpHeartbeat, ev.Op)
	}
}

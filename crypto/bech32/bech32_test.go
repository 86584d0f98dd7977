package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/xswap/errors"
)

func TestEncodeDecode(t *testing.T) {
	// bech32  -e -h tiov 746573742d7061796c6f6164
	const enc = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`

	want, err := hex.DecodeString("746573742d7061796c6f6164")
	if err != nil {
		t.Fatal(err)
	}

	hrp, payload, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if hrp != "tiov" {
		t.Fatalf("unexpected prefix: %q", hrp)
	}
	if !bytes.Equal(want, payload) {
		t.Fatalf("invalid decode: %x", payload)
	}

	raw, err := Encode(hrp, payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if raw != enc {
		t.Fatalf("invalid encoding: %q", raw)
	}
}

func TestDecodeWithPrefix(t *testing.T) {
	payload := bytes.Repeat([]byte{0xab}, 32)
	enc, err := Encode("xswap", payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}

	got, err := DecodeWithPrefix("xswap", enc)
	if err != nil {
		t.Fatalf("cannot decode: %s", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("invalid decode: %x", got)
	}

	if _, err := DecodeWithPrefix("other", enc); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
	last := "q"
	if enc[len(enc)-1] == 'q' {
		last = "p"
	}
	if _, err := DecodeWithPrefix("xswap", enc[:len(enc)-1]+last); !errors.ErrInput.Is(err) {
		t.Fatalf("want checksum error, got %+v", err)
	}
}

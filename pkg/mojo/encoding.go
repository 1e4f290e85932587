package mojo

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// sourceEncoding resolves the project's source encoding. UTF-8 needs no
// transcoding and yields nil.
func sourceEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported source encoding %q: %w", name, err)
	}
	return enc, nil
}

func decode(enc encoding.Encoding, content []byte) ([]byte, error) {
	if enc == nil {
		return content, nil
	}
	return enc.NewDecoder().Bytes(content)
}

func encode(enc encoding.Encoding, content []byte) ([]byte, error) {
	if enc == nil {
		return content, nil
	}
	return enc.NewEncoder().Bytes(content)
}

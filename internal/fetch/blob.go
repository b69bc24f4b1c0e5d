package fetch

import (
	"bytes"
	"encoding/json"
	"io"
)

// Blob is an immutable chunk of binary data with a MIME type.
type Blob struct {
	data []byte
	typ  string
}

// NewBlob copies data into a new Blob.
func NewBlob(data []byte, typ string) *Blob {
	return &Blob{data: bytes.Clone(data), typ: typ}
}

// Type returns the MIME type, which may be empty.
func (b *Blob) Type() string { return b.typ }

// Size returns the length of the data in bytes.
func (b *Blob) Size() int { return len(b.data) }

// Bytes returns a copy of the data.
func (b *Blob) Bytes() []byte { return bytes.Clone(b.data) }

// Text returns the data decoded as UTF-8.
func (b *Blob) Text() string { return string(b.data) }

// Reader returns a reader over the data.
func (b *Blob) Reader() io.Reader { return bytes.NewReader(b.data) }

// MarshalJSON encodes the blob as its type, size and base64 data.
func (b *Blob) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Size int    `json:"size"`
		Data []byte `json:"data"`
	}{b.typ, len(b.data), b.data})
}

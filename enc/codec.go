// Package enc implements the Dynamic wire codec of spec §4.4/§9: "arguments
// travel as (TypeId, bytes) pairs" reconstructed "via per-type decoders
// registered by the interpreter that loads user modules". Rather than
// hand-writing a marshaler per registered Go type, one recursive codec
// driven by reflect.Kind serves every registration — adapted from the
// teacher's pkg/encoding/rivbin, which takes the same single-codec-by-
// reflection approach for its wire format.
package enc

import (
	"bytes"
	"reflect"

	"github.com/therewillbecode/Fae-1/types"
)

// reflectCodec is a types.Codec for one concrete Go type.
type reflectCodec struct {
	id types.TypeID
	t  reflect.Type
}

// New returns a types.Codec encoding and decoding values of T, tagged id.
func New[T any](id types.TypeID) types.Codec {
	var zero T
	return reflectCodec{id: id, t: reflect.TypeOf(zero)}
}

func (c reflectCodec) Type() types.TypeID { return c.id }

func (c reflectCodec) Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c reflectCodec) Decode(b []byte) (interface{}, error) {
	rv := reflect.New(c.t).Elem()
	if err := decodeValue(bytes.NewReader(b), rv); err != nil {
		return nil, err
	}
	return rv.Interface(), nil
}

// Registry builds a types.MapRegistry from a sequence of codecs, the shape
// the interpreter collaborator populates once at module-load time (spec
// §1's "source-code interpreter that turns user-submitted modules into
// callable contracts").
func Registry(codecs ...types.Codec) types.MapRegistry {
	r := make(types.MapRegistry, len(codecs))
	for _, c := range codecs {
		r[c.Type()] = c
	}
	return r
}

package enc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"reflect"
)

// encodeValue recursively renders v, descending into exported struct
// fields, slices, arrays, and pointers. Integer kinds are always written as
// their 64-bit form regardless of declared width, since decodeValue is
// driven by the same reflect.Type and always reads back the matching
// width.
func encodeValue(buf *bytes.Buffer, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return binary.Write(buf, binary.LittleEndian, v.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return binary.Write(buf, binary.LittleEndian, v.Uint())

	case reflect.String:
		s := v.String()
		if err := binary.Write(buf, binary.LittleEndian, uint64(len(s))); err != nil {
			return err
		}
		_, err := buf.WriteString(s)
		return err

	case reflect.Slice:
		n := v.Len()
		if err := binary.Write(buf, binary.LittleEndian, uint64(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := encodeValue(buf, v.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := encodeValue(buf, v.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if t.Field(i).PkgPath != "" { // unexported
				continue
			}
			if err := encodeValue(buf, v.Field(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Ptr:
		if v.IsNil() {
			buf.WriteByte(0)
			return nil
		}
		buf.WriteByte(1)
		return encodeValue(buf, v.Elem())

	default:
		return fmt.Errorf("enc: unsupported kind %s", v.Kind())
	}
}

func decodeValue(r *bytes.Reader, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		v.SetBool(b != 0)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var i int64
		if err := binary.Read(r, binary.LittleEndian, &i); err != nil {
			return err
		}
		v.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var u uint64
		if err := binary.Read(r, binary.LittleEndian, &u); err != nil {
			return err
		}
		v.SetUint(u)
		return nil

	case reflect.String:
		var n uint64
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return err
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		v.SetString(string(buf))
		return nil

	case reflect.Slice:
		var n uint64
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return err
		}
		sl := reflect.MakeSlice(v.Type(), int(n), int(n))
		for i := 0; i < int(n); i++ {
			if err := decodeValue(r, sl.Index(i)); err != nil {
				return err
			}
		}
		v.Set(sl)
		return nil

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := decodeValue(r, v.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if t.Field(i).PkgPath != "" {
				continue
			}
			if err := decodeValue(r, v.Field(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Ptr:
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		if b == 0 {
			return nil
		}
		elem := reflect.New(v.Type().Elem())
		if err := decodeValue(r, elem.Elem()); err != nil {
			return err
		}
		v.Set(elem)
		return nil

	default:
		return fmt.Errorf("enc: unsupported kind %s", v.Kind())
	}
}

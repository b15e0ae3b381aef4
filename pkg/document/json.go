package document

import (
	"github.com/buger/jsonparser"
	gojson "github.com/goccy/go-json"
)

// jsonNode is a lazily-queried slice of the original JSON input.
// Nothing is decoded until a lookup asks for it.
type jsonNode struct {
	raw []byte
	typ jsonparser.ValueType
}

// ParseJSON validates data and returns its root object.
func ParseJSON(data []byte) (Node, error) {
	if !gojson.Valid(data) {
		return nil, ErrInvalidJSON
	}

	value, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, ErrInvalidJSON
	}
	if typ != jsonparser.Object {
		return nil, ErrNotObject
	}

	return jsonNode{raw: value, typ: typ}, nil
}

func (n jsonNode) String(key string) (string, bool) {
	if n.typ != jsonparser.Object {
		return "", false
	}
	s, err := jsonparser.GetString(n.raw, key)
	if err != nil {
		return "", false
	}
	return s, true
}

func (n jsonNode) Has(key string) bool {
	if n.typ != jsonparser.Object {
		return false
	}
	_, _, _, err := jsonparser.Get(n.raw, key)
	return err == nil
}

func (n jsonNode) Array(key string) []Node {
	if n.typ != jsonparser.Object {
		return nil
	}
	value, typ, _, err := jsonparser.Get(n.raw, key)
	if err != nil || typ != jsonparser.Array {
		return nil
	}
	return jsonNode{raw: value, typ: typ}.Elements()
}

func (n jsonNode) Elements() []Node {
	if n.typ != jsonparser.Array {
		return nil
	}

	var out []Node
	_, _ = jsonparser.ArrayEach(n.raw, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if err != nil {
			return
		}
		out = append(out, jsonNode{raw: value, typ: dataType})
	})
	return out
}

func (n jsonNode) Float() float64 {
	if n.typ != jsonparser.Number {
		return 0
	}
	f, err := jsonparser.ParseFloat(n.raw)
	if err != nil {
		return 0
	}
	return f
}

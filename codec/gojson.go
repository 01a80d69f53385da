package codec

import gojson "github.com/goccy/go-json"

// NameGoJSON selects GoJSON.
const NameGoJSON = "go-json"

// GoJSON encodes reports with github.com/goccy/go-json. It is the Default.
type GoJSON struct{}

func (GoJSON) Name() string { return NameGoJSON }

func (GoJSON) Marshal(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

func (GoJSON) Unmarshal(data []byte, v any) error {
	return gojson.Unmarshal(data, v)
}

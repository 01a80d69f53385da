package codec

import "encoding/json"

// NameJSON selects JSON.
const NameJSON = "json"

// JSON encodes reports with encoding/json. Match lists and summaries come
// out byte-identical to GoJSON.
type JSON struct{}

func (JSON) Name() string { return NameJSON }

func (JSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Default is used when no codec is configured.
var Default Codec = GoJSON{}

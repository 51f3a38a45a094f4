package roomiev1

import "encoding/json"

// Codec marshals API messages as JSON. It registers under the name "json",
// so Connect clients send and handlers accept "application/json".
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

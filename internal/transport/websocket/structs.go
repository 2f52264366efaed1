package websocket

import "encoding/json"

// Message is the relay envelope: an action name and its raw payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Decode - unmarshals the payload into v. An empty payload leaves v untouched.
func (that *Message) Decode(v any) error {
	if len(that.Payload) == 0 {
		return nil
	}

	return json.Unmarshal(that.Payload, v)
}

package services

import (
	"encoding/json"
)

// IncomingMessage is one raw message object from the webhook envelope
type IncomingMessage struct {
	ID   string `json:"id"`
	From string `json:"from"`
	Type string `json:"type"`
	Text struct {
		Body string `json:"body"`
	} `json:"text"`
}

// changeValue is the "value" object carrying messages and contacts. Meta
// wraps it in entry[0].changes[0], but some relays post it at the top level.
type changeValue struct {
	Messages []IncomingMessage `json:"messages"`
	Contacts []struct {
		Profile struct {
			Name string `json:"name"`
		} `json:"profile"`
	} `json:"contacts"`
}

type nestedEnvelope struct {
	Entry []struct {
		Changes []struct {
			Value changeValue `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type flatEnvelope struct {
	Value changeValue `json:"value"`
}

// ExtractMessages locates the inbound messages and the optional contact
// display name inside a webhook payload. It tries the nested Meta envelope
// first and falls back to the flat shape. Malformed or partial payloads
// degrade to an empty result, never an error: the platform sends plenty of
// event types (statuses, reactions) this service does not act on.
func ExtractMessages(body []byte) (contactName string, messages []IncomingMessage) {
	var nested nestedEnvelope
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested.Entry) > 0 && len(nested.Entry[0].Changes) > 0 {
			value := nested.Entry[0].Changes[0].Value
			if len(value.Messages) > 0 {
				return profileName(value), value.Messages
			}
		}
	}

	var flat flatEnvelope
	if err := json.Unmarshal(body, &flat); err == nil {
		if len(flat.Value.Messages) > 0 {
			return profileName(flat.Value), flat.Value.Messages
		}
	}

	return "", nil
}

func profileName(value changeValue) string {
	if len(value.Contacts) == 0 {
		return ""
	}
	return value.Contacts[0].Profile.Name
}

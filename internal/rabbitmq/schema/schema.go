package schema

import (
	"encoding/json"
	"time"
)

// RestoreLink is the message body published for every restore link that
// has to be emailed.
type RestoreLink struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (r *RestoreLink) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (r *RestoreLink) Unmarshal(data []byte) error {
	return json.Unmarshal(data, r)
}

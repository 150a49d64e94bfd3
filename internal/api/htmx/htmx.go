package htmx

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	HeaderRequest = "HX-Request"
	HeaderTrigger = "HX-Trigger"
)

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(HeaderRequest), "true")
}

// TriggerHeaders builds the response headers that fire a client-side event
// carrying detail once the fragment is swapped in.
func TriggerHeaders(event string, detail any) (map[string]string, error) {
	payload, err := json.Marshal(map[string]any{event: detail})
	if err != nil {
		return nil, err
	}
	return map[string]string{HeaderTrigger: string(payload)}, nil
}

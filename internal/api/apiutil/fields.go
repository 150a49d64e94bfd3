package apiutil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

func ParsePositiveInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", field)
	}
	return value, nil
}

// PathID parses the named path wildcard as a positive id.
func PathID(r *http.Request, name string) (int64, error) {
	return ParsePositiveInt64Field(r.PathValue(name), name)
}

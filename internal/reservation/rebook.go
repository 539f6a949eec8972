package reservation

import (
	"encoding/json"
	"net/url"
)

// EncodeRebook serializes a draft into the URL-escaped JSON form carried
// by a rebook link's query parameter.
func EncodeRebook(d Draft) string {
	data, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	return url.QueryEscape(string(data))
}

// DecodeRebook rehydrates a draft from a rebook link parameter. The date
// is forcibly reset to the unset sentinel so the user must pick a new one
// instead of silently resubmitting a stale date. Malformed input degrades
// to the zero draft rather than surfacing a parse error; a corrupt link
// yields an empty form, not a crash.
func DecodeRebook(encoded string) Draft {
	raw, err := url.QueryUnescape(encoded)
	if err != nil {
		return Draft{}
	}
	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return Draft{}
	}
	d.Date = DateUnset
	return d
}

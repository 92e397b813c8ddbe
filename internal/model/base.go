package model

import "time"

// JSONMap represents a generic JSON object
type JSONMap map[string]interface{}

// Merge returns a shallow merge of other onto m. Keys present in other
// replace keys in m wholesale; nested objects are not merged recursively,
// callers pass the full replacement sub-object.
func (m JSONMap) Merge(other JSONMap) JSONMap {
	out := make(JSONMap, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// ListOptions contains common list filter fields. Exact-match filters
// (Status) apply before range filters (From/To), search term last.
type ListOptions struct {
	Search string    `form:"search"`
	Status string    `form:"status"`
	From   time.Time `form:"from"`
	To     time.Time `form:"to"`
}

// ContactPreferences records which channels a person consented to.
type ContactPreferences struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
	Voice bool `json:"voice"`
}

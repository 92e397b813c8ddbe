package handler

import (
	"net/url"
	"time"

	"github.com/medboard/hospital-api/internal/model"
)

// ListOptionsFromQuery parses the shared list filters from a query
// string. Date bounds accept RFC3339 or plain dates.
func ListOptionsFromQuery(q url.Values) *model.ListOptions {
	opts := &model.ListOptions{
		Search: q.Get("search"),
		Status: q.Get("status"),
	}
	if v := q.Get("from"); v != "" {
		opts.From = parseTime(v)
	}
	if v := q.Get("to"); v != "" {
		opts.To = parseTime(v)
	}
	return opts
}

func parseTime(v string) time.Time {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t
	}
	return time.Time{}
}

package jira

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Document is a decoded JSON object.
type Document map[string]any

// String returns the string value at key, or "" when absent or not a string.
func (d Document) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// Int64 returns the integer value at key. Jira reports most ids as strings,
// so string values are parsed as well.
func (d Document) Int64(key string) (int64, error) {
	switch v := d[key].(type) {
	case json.Number:
		return v.Int64()
	case float64:
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", key, err)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("field %q is missing", key)
	default:
		return 0, fmt.Errorf("field %q has unexpected type %T", key, v)
	}
}

// Documents returns the list of objects at key. Non-object entries are skipped.
func (d Document) Documents(key string) []Document {
	items, _ := d[key].([]any)
	docs := make([]Document, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case map[string]any:
			docs = append(docs, Document(v))
		case Document:
			docs = append(docs, v)
		}
	}
	return docs
}

// Resource addresses a REST resource relative to the API root.
type Resource struct {
	Segments []string
	Query    url.Values
}

// R builds a resource from path segments.
func R(segments ...string) Resource {
	return Resource{Segments: segments}
}

// With returns a copy of r with an added query parameter.
func (r Resource) With(key, value string) Resource {
	q := url.Values{}
	for k, vs := range r.Query {
		q[k] = append([]string(nil), vs...)
	}
	q.Add(key, value)
	return Resource{Segments: r.Segments, Query: q}
}

// String renders the resource as a relative path with query.
func (r Resource) String() string {
	escaped := make([]string, len(r.Segments))
	for i, s := range r.Segments {
		escaped[i] = url.PathEscape(s)
	}
	p := strings.Join(escaped, "/")
	if len(r.Query) > 0 {
		p += "?" + r.Query.Encode()
	}
	return p
}

package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// ListProjectsFilter describes what a caller asked for when listing
// projects. Empty slices and a nil Private mean "unconstrained on that
// dimension"; visibility rules are applied on top of it by the query
// compiler, never here.
type ListProjectsFilter struct {
	IDs      []string
	AdminIDs []string
	Private  *bool
}

// FilterFromQueryParams parses the wire representation of a filter:
// `ids` and `adminIds` as comma-separated lists, `private` as a bool.
// Unparseable values leave the dimension unconstrained.
func FilterFromQueryParams(params url.Values) ListProjectsFilter {
	f := ListProjectsFilter{
		IDs:      splitParam(params.Get("ids")),
		AdminIDs: splitParam(params.Get("adminIds")),
	}
	if raw := params.Get("private"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			f.Private = &b
		}
	}
	return f
}

// QueryParams serializes the filter back to its wire representation.
func (f ListProjectsFilter) QueryParams() url.Values {
	params := url.Values{}
	if len(f.IDs) > 0 {
		params.Set("ids", strings.Join(f.IDs, ","))
	}
	if len(f.AdminIDs) > 0 {
		params.Set("adminIds", strings.Join(f.AdminIDs, ","))
	}
	if f.Private != nil {
		params.Set("private", strconv.FormatBool(*f.Private))
	}
	return params
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

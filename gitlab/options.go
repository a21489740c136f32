package gitlab

import (
	"net/url"
	"strconv"
	"time"
)

// queryOption binds an option name to the effect that renders its value
// into a query string. Option tables are declared explicitly per
// options struct instead of being discovered through reflection.
type queryOption struct {
	name   string
	render func(name string, q url.Values)
}

// buildQuery applies an option table, producing the query parameters for
// one listing call.
func buildQuery(opts []queryOption) url.Values {
	q := url.Values{}
	for _, opt := range opts {
		opt.render(opt.name, q)
	}
	return q
}

func renderString(v string) func(string, url.Values) {
	return func(name string, q url.Values) {
		if v != "" {
			q.Set(name, v)
		}
	}
}

func renderInt(v int) func(string, url.Values) {
	return func(name string, q url.Values) {
		if v != 0 {
			q.Set(name, strconv.Itoa(v))
		}
	}
}

func renderBool(v *bool) func(string, url.Values) {
	return func(name string, q url.Values) {
		if v != nil {
			q.Set(name, strconv.FormatBool(*v))
		}
	}
}

func renderTime(v *time.Time) func(string, url.Values) {
	return func(name string, q url.Values) {
		if v != nil {
			q.Set(name, v.UTC().Format(time.RFC3339))
		}
	}
}

// ListOptions carries the paging parameters shared by all list
// endpoints. The page size applies to the entry request; subsequent
// page URLs come verbatim from the server's next links.
type ListOptions struct {
	PerPage int `validate:"omitempty,gte=1,lte=100"`
}

func (o ListOptions) queryOptions() []queryOption {
	return []queryOption{
		{"per_page", renderInt(o.PerPage)},
	}
}

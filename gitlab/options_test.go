package gitlab

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestBuildQuerySkipsZeroValues(t *testing.T) {
	opts := &ListProjectsOptions{}
	q := buildQuery(opts.queryOptions())
	assert.Empty(t, q)
}

func TestBuildQueryRendersSetValues(t *testing.T) {
	opts := &ListProjectsOptions{
		ListOptions: ListOptions{PerPage: 20},
		Search:      "infra",
		Visibility:  "private",
		OrderBy:     "last_activity_at",
		Sort:        "desc",
		Archived:    boolPtr(false),
		Membership:  boolPtr(true),
	}

	q := buildQuery(opts.queryOptions())
	assert.Equal(t, "20", q.Get("per_page"))
	assert.Equal(t, "infra", q.Get("search"))
	assert.Equal(t, "private", q.Get("visibility"))
	assert.Equal(t, "last_activity_at", q.Get("order_by"))
	assert.Equal(t, "desc", q.Get("sort"))
	assert.Equal(t, "false", q.Get("archived"))
	assert.Equal(t, "true", q.Get("membership"))
}

func TestBuildQueryRendersTimes(t *testing.T) {
	since := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	opts := &ListCommitsOptions{RefName: "main", Since: &since}

	q := buildQuery(opts.queryOptions())
	assert.Equal(t, "main", q.Get("ref_name"))
	assert.Equal(t, "2024-03-01T12:30:00Z", q.Get("since"))
	assert.False(t, q.Has("until"))
}

func TestListOptionsValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    *ListProjectsOptions
		wantErr bool
	}{
		{"empty options valid", &ListProjectsOptions{}, false},
		{"valid sort", &ListProjectsOptions{Sort: "asc"}, false},
		{"invalid sort", &ListProjectsOptions{Sort: "sideways"}, true},
		{"invalid visibility", &ListProjectsOptions{Visibility: "hidden"}, true},
		{"invalid order_by", &ListProjectsOptions{OrderBy: "stars"}, true},
		{"per_page too large", &ListProjectsOptions{ListOptions: ListOptions{PerPage: 500}}, true},
		{"per_page in range", &ListProjectsOptions{ListOptions: ListOptions{PerPage: 100}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.opts)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCreateOptionsValidation(t *testing.T) {
	assert.Error(t, validate.Struct(&CreateProjectOptions{}))
	assert.NoError(t, validate.Struct(&CreateProjectOptions{Name: "demo"}))
	assert.Error(t, validate.Struct(&CreateBranchOptions{Branch: "feature"}))
	assert.NoError(t, validate.Struct(&CreateBranchOptions{Branch: "feature", Ref: "main"}))
}

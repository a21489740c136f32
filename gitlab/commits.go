package gitlab

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// ListCommitsOptions filters the commit listing.
type ListCommitsOptions struct {
	ListOptions
	RefName string
	Path    string
	Since   *time.Time
	Until   *time.Time
}

func (o *ListCommitsOptions) queryOptions() []queryOption {
	return append(o.ListOptions.queryOptions(),
		queryOption{"ref_name", renderString(o.RefName)},
		queryOption{"path", renderString(o.Path)},
		queryOption{"since", renderTime(o.Since)},
		queryOption{"until", renderTime(o.Until)},
	)
}

// ListCommits returns a page iterator over a project's commits.
func (c *Client) ListCommits(projectID string, opts *ListCommitsOptions) *Pages[Commit] {
	var query url.Values
	if opts != nil {
		if err := validate.Struct(opts); err != nil {
			return failedPages[Commit](fmt.Errorf("invalid commit listing options: %w", err))
		}
		query = buildQuery(opts.queryOptions())
	}
	return Paginate[Commit](c, &Request{
		Method: MethodGet,
		Path:   projectPath(projectID) + "/repository/commits",
		Query:  query,
	})
}

// GetCommit fetches one commit by SHA or ref name.
func (c *Client) GetCommit(ctx context.Context, projectID, sha string) (*Commit, error) {
	commit, err := Fetch[Commit](ctx, c, &Request{
		Method: MethodGet,
		Path:   projectPath(projectID) + "/repository/commits/" + url.PathEscape(sha),
	})
	if err != nil {
		return nil, err
	}
	return &commit, nil
}

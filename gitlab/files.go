package gitlab

import (
	"context"
	"io"
	"net/url"
)

// GetRawFile streams the raw contents of a repository file at the given
// ref to consume. The connection is released when consume returns.
func (c *Client) GetRawFile(ctx context.Context, projectID, filePath, ref string, consume func(io.Reader) error) error {
	query := url.Values{}
	if ref != "" {
		query.Set("ref", ref)
	}
	return c.Stream(ctx, &Request{
		Method: MethodGet,
		Path:   projectPath(projectID) + "/repository/files/" + url.PathEscape(filePath) + "/raw",
		Query:  query,
	}, consume)
}

// GetArchive streams a repository archive at the given SHA or ref to
// consume.
func (c *Client) GetArchive(ctx context.Context, projectID, sha string, consume func(io.Reader) error) error {
	query := url.Values{}
	if sha != "" {
		query.Set("sha", sha)
	}
	return c.Stream(ctx, &Request{
		Method: MethodGet,
		Path:   projectPath(projectID) + "/repository/archive",
		Query:  query,
	}, consume)
}

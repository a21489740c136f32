package gitlab

import (
	"context"
	"fmt"
	"net/url"
)

func branchPath(projectID, branch string) string {
	return projectPath(projectID) + "/repository/branches/" + url.PathEscape(branch)
}

// ListBranchesOptions filters the branch listing.
type ListBranchesOptions struct {
	ListOptions
	Search string
}

func (o *ListBranchesOptions) queryOptions() []queryOption {
	return append(o.ListOptions.queryOptions(),
		queryOption{"search", renderString(o.Search)},
	)
}

// ListBranches returns a page iterator over a project's branches.
func (c *Client) ListBranches(projectID string, opts *ListBranchesOptions) *Pages[Branch] {
	var query url.Values
	if opts != nil {
		if err := validate.Struct(opts); err != nil {
			return failedPages[Branch](fmt.Errorf("invalid branch listing options: %w", err))
		}
		query = buildQuery(opts.queryOptions())
	}
	return Paginate[Branch](c, &Request{
		Method: MethodGet,
		Path:   projectPath(projectID) + "/repository/branches",
		Query:  query,
	})
}

// GetBranch fetches one branch by name.
func (c *Client) GetBranch(ctx context.Context, projectID, branch string) (*Branch, error) {
	b, err := Fetch[Branch](ctx, c, &Request{Method: MethodGet, Path: branchPath(projectID, branch)})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBranchOptions names the new branch and the ref it starts from.
type CreateBranchOptions struct {
	Branch string `json:"branch" validate:"required"`
	Ref    string `json:"ref" validate:"required"`
}

// CreateBranch creates a branch from an existing ref.
func (c *Client) CreateBranch(ctx context.Context, projectID string, opts *CreateBranchOptions) (*Branch, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid branch creation options: %w", err)
	}
	b, err := Fetch[Branch](ctx, c, &Request{
		Method: MethodPost,
		Path:   projectPath(projectID) + "/repository/branches",
		Body:   opts,
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBranch deletes a branch. The DELETE carries no body.
func (c *Client) DeleteBranch(ctx context.Context, projectID, branch string) error {
	_, err := c.Do(ctx, &Request{Method: MethodDelete, Path: branchPath(projectID, branch)})
	return err
}

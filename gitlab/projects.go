package gitlab

import (
	"context"
	"fmt"
	"net/url"
)

// projectPath escapes a project identifier (numeric ID or
// "group/subgroup/project" path) into a single URL path segment.
func projectPath(id string) string {
	return "projects/" + url.PathEscape(id)
}

// ListProjectsOptions filters the project listing.
type ListProjectsOptions struct {
	ListOptions
	Search     string
	Visibility string `validate:"omitempty,oneof=public internal private"`
	OrderBy    string `validate:"omitempty,oneof=id name path created_at updated_at last_activity_at"`
	Sort       string `validate:"omitempty,oneof=asc desc"`
	Archived   *bool
	Membership *bool
}

func (o *ListProjectsOptions) queryOptions() []queryOption {
	return append(o.ListOptions.queryOptions(),
		queryOption{"search", renderString(o.Search)},
		queryOption{"visibility", renderString(o.Visibility)},
		queryOption{"order_by", renderString(o.OrderBy)},
		queryOption{"sort", renderString(o.Sort)},
		queryOption{"archived", renderBool(o.Archived)},
		queryOption{"membership", renderBool(o.Membership)},
	)
}

// ListProjects returns a page iterator over the visible projects.
func (c *Client) ListProjects(opts *ListProjectsOptions) *Pages[Project] {
	var query url.Values
	if opts != nil {
		if err := validate.Struct(opts); err != nil {
			return failedPages[Project](fmt.Errorf("invalid project listing options: %w", err))
		}
		query = buildQuery(opts.queryOptions())
	}
	return Paginate[Project](c, &Request{Method: MethodGet, Path: "projects", Query: query})
}

// GetProject fetches one project by numeric ID or namespace path.
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	project, err := Fetch[Project](ctx, c, &Request{Method: MethodGet, Path: projectPath(id)})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProjectOptions is the payload for project creation.
type CreateProjectOptions struct {
	Name                 string `json:"name" validate:"required"`
	Path                 string `json:"path,omitempty"`
	Description          string `json:"description,omitempty"`
	Visibility           string `json:"visibility,omitempty" validate:"omitempty,oneof=public internal private"`
	DefaultBranch        string `json:"default_branch,omitempty"`
	InitializeWithReadme bool   `json:"initialize_with_readme,omitempty"`
}

// CreateProject creates a project owned by the authenticated user.
func (c *Client) CreateProject(ctx context.Context, opts *CreateProjectOptions) (*Project, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid project creation options: %w", err)
	}
	project, err := Fetch[Project](ctx, c, &Request{Method: MethodPost, Path: "projects", Body: opts})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProjectOptions is the payload for project updates; zero-valued
// fields are left unchanged server-side.
type UpdateProjectOptions struct {
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
	Visibility    string `json:"visibility,omitempty" validate:"omitempty,oneof=public internal private"`
	DefaultBranch string `json:"default_branch,omitempty"`
	Archived      *bool  `json:"archived,omitempty"`
}

// UpdateProject updates attributes of an existing project.
func (c *Client) UpdateProject(ctx context.Context, id string, opts *UpdateProjectOptions) (*Project, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid project update options: %w", err)
	}
	project, err := Fetch[Project](ctx, c, &Request{Method: MethodPut, Path: projectPath(id), Body: opts})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject schedules a project for deletion.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	_, err := c.Do(ctx, &Request{Method: MethodDelete, Path: projectPath(id)})
	return err
}

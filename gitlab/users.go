package gitlab

import (
	"context"
	"fmt"
	"net/url"
)

// CurrentUser fetches the account owning the token.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	user, err := Fetch[User](ctx, c, &Request{Method: MethodGet, Path: "user"})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser fetches one user by ID.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	user, err := Fetch[User](ctx, c, &Request{Method: MethodGet, Path: fmt.Sprintf("users/%d", id)})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsersOptions filters the user listing.
type ListUsersOptions struct {
	ListOptions
	Search string
	Active *bool
}

func (o *ListUsersOptions) queryOptions() []queryOption {
	return append(o.ListOptions.queryOptions(),
		queryOption{"search", renderString(o.Search)},
		queryOption{"active", renderBool(o.Active)},
	)
}

// ListUsers returns a page iterator over the instance's users.
func (c *Client) ListUsers(opts *ListUsersOptions) *Pages[User] {
	var query url.Values
	if opts != nil {
		if err := validate.Struct(opts); err != nil {
			return failedPages[User](fmt.Errorf("invalid user listing options: %w", err))
		}
		query = buildQuery(opts.queryOptions())
	}
	return Paginate[User](c, &Request{Method: MethodGet, Path: "users", Query: query})
}

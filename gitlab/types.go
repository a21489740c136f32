package gitlab

import "time"

// Domain records are plain data mapped from API responses; they carry
// no behavior.

// Project is a repository project.
type Project struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Path              string     `json:"path"`
	PathWithNamespace string     `json:"path_with_namespace"`
	Description       string     `json:"description"`
	DefaultBranch     string     `json:"default_branch"`
	Visibility        string     `json:"visibility"`
	WebURL            string     `json:"web_url"`
	SSHURL            string     `json:"ssh_url_to_repo"`
	HTTPURL           string     `json:"http_url_to_repo"`
	Archived          bool       `json:"archived"`
	StarCount         int        `json:"star_count"`
	ForksCount        int        `json:"forks_count"`
	CreatedAt         *time.Time `json:"created_at"`
	LastActivityAt    *time.Time `json:"last_activity_at"`
}

// Branch is a repository branch.
type Branch struct {
	Name      string  `json:"name"`
	Merged    bool    `json:"merged"`
	Protected bool    `json:"protected"`
	Default   bool    `json:"default"`
	WebURL    string  `json:"web_url"`
	Commit    *Commit `json:"commit"`
}

// Commit is a repository commit.
type Commit struct {
	ID             string     `json:"id"`
	ShortID        string     `json:"short_id"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	AuthorName     string     `json:"author_name"`
	AuthorEmail    string     `json:"author_email"`
	AuthoredDate   *time.Time `json:"authored_date"`
	CommitterName  string     `json:"committer_name"`
	CommitterEmail string     `json:"committer_email"`
	CommittedDate  *time.Time `json:"committed_date"`
	ParentIDs      []string   `json:"parent_ids"`
	WebURL         string     `json:"web_url"`
}

// User is an account on the instance.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	State     string     `json:"state"`
	IsAdmin   bool       `json:"is_admin"`
	AvatarURL string     `json:"avatar_url"`
	WebURL    string     `json:"web_url"`
	CreatedAt *time.Time `json:"created_at"`
}

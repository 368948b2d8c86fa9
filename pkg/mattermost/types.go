package mattermost

// Emoji represents a single custom emoji record as returned by the Mattermost
// emoji API. The id is assigned by the server and never changes; the name is
// the human-chosen identifier used in chat (and as the local filename stem).
// Timestamps are milliseconds since the Unix epoch.
type Emoji struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatorID string `json:"creator_id"`
	CreateAt  int64  `json:"create_at"`
	UpdateAt  int64  `json:"update_at"`
	DeleteAt  int64  `json:"delete_at"`
}

// User represents the subset of a Mattermost user record needed to confirm
// who the access token authenticates as.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

package domain

// Session is the credential bundle returned by a successful login.
type Session struct {
	DID        string
	Handle     string
	Email      string
	AccessJwt  string
	RefreshJwt string
}

// Profile is a detailed view of an account.
type Profile struct {
	DID            string
	Handle         string
	DisplayName    string
	Description    string
	Avatar         string
	FollowersCount int
	FollowsCount   int
	PostsCount     int
	FollowingURI   string // Set when the session user already follows this account.
}

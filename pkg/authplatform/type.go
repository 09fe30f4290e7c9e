package authplatform

// Config holds the platform OAuth credentials.
type Config struct {
	AppID   string
	Secret  string
	BaseURL string
}

// Session is the result of a code exchange.
type Session struct {
	OpenID     string
	UnionID    string
	SessionKey string
}

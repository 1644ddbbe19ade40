package models

import "time"

// Session is a server-stored opaque token that keeps a login alive until
// logout or expiry.
type Session struct {
	Token   string
	UserID  string
	Expires time.Time
}

package common

// AccessTokenHeaderName is the HTTP header carrying the bearer access token.
const AccessTokenHeaderName = "Authorization"

// SessionTokenHeaderName carries the opaque server-stored session token,
// presented back on logout.
const SessionTokenHeaderName = "X-Session-Token"

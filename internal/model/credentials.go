package model

// Credentials contains the values identifying an API client.
//
// The core treats all the fields as opaque strings.
type Credentials struct {
	// APIKey is the MANDATORY application key sent as api_key.
	APIKey string `json:"api_key"`

	// SharedSecret is the OPTIONAL secret used to sign requests. When
	// empty, requests are sent unsigned.
	SharedSecret string `json:"shared_secret,omitempty"`

	// AuthToken is the OPTIONAL token obtained from a prior login.
	AuthToken string `json:"auth_token,omitempty"`
}

// Signed returns whether requests using these credentials are signed.
func (c *Credentials) Signed() bool {
	return c.SharedSecret != ""
}

// Authenticated returns whether we have an auth token.
func (c *Credentials) Authenticated() bool {
	return c.AuthToken != ""
}

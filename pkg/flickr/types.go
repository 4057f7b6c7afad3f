package flickr

import "encoding/xml"

// Empty is the result type of methods returning no payload.
type Empty struct{}

// User is a user as returned by flickr.test.login and flickr.people.find*.
type User struct {
	ID       string `xml:"id,attr"`
	NSID     string `xml:"nsid,attr"`
	Username string `xml:"username"`
}

// AuthUser is the user to which an auth token belongs.
type AuthUser struct {
	NSID     string `xml:"nsid,attr"`
	Username string `xml:"username,attr"`
	FullName string `xml:"fullname,attr"`
}

// AuthInfo describes an auth token.
type AuthInfo struct {
	Token string   `xml:"token"`
	Perms string   `xml:"perms"`
	User  AuthUser `xml:"user"`
}

// Person is the result of flickr.people.getInfo.
type Person struct {
	ID         string `xml:"id,attr"`
	NSID       string `xml:"nsid,attr"`
	IsPro      bool   `xml:"ispro,attr"`
	Username   string `xml:"username"`
	RealName   string `xml:"realname"`
	Location   string `xml:"location"`
	PhotosURL  string `xml:"photosurl"`
	PhotoCount int    `xml:"photos>count"`
}

// Tag is a tag attached to a photo. Value is the normalized form.
type Tag struct {
	ID     string `xml:"id,attr"`
	Author string `xml:"author,attr"`
	Raw    string `xml:"raw,attr"`
	Value  string `xml:",chardata"`
}

// PhotoOwner is the owner of a photo.
type PhotoOwner struct {
	NSID     string `xml:"nsid,attr"`
	Username string `xml:"username,attr"`
}

// PhotoInfo is the result of flickr.photos.getInfo.
type PhotoInfo struct {
	ID          string     `xml:"id,attr"`
	Secret      string     `xml:"secret,attr"`
	Server      string     `xml:"server,attr"`
	Views       int        `xml:"views,attr"`
	Owner       PhotoOwner `xml:"owner"`
	Title       string     `xml:"title"`
	Description string     `xml:"description"`
	Tags        []Tag      `xml:"tags>tag"`
}

// PhotoSummary is a photo inside a [PhotoList].
type PhotoSummary struct {
	ID       string `xml:"id,attr"`
	Owner    string `xml:"owner,attr"`
	Secret   string `xml:"secret,attr"`
	Server   string `xml:"server,attr"`
	Title    string `xml:"title,attr"`
	IsPublic bool   `xml:"ispublic,attr"`
}

// PhotoList is a page of photos.
type PhotoList struct {
	Page    int            `xml:"page,attr"`
	Pages   int            `xml:"pages,attr"`
	PerPage int            `xml:"perpage,attr"`
	Total   int            `xml:"total,attr"`
	Photos  []PhotoSummary `xml:"photo"`
}

// PhotoTags is the result of flickr.tags.getListPhoto.
type PhotoTags struct {
	ID   string `xml:"id,attr"`
	Tags []Tag  `xml:"tags>tag"`
}

// SearchOptions contains the filters of flickr.photos.search. Zero
// fields are not sent.
type SearchOptions struct {
	// Tags matches photos carrying any of these tags.
	Tags []string

	// UserID restricts the search to the photos of this user.
	UserID string

	// Page is the 1-based page number.
	Page int

	// PerPage is the page size.
	PerPage int
}

// echoItem is an element echoed by flickr.test.echo.
type echoItem struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

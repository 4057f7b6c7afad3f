package testingx

//
// Code for testing against a fake photo-sharing REST API.
//

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goflickr/goflickr/internal/apiparam"
	"github.com/goflickr/goflickr/internal/apisig"
	"github.com/google/uuid"
)

// FlickrBackendUserRecord is a user record used by [FlickrBackend].
type FlickrBackendUserRecord struct {
	NSID       string
	Username   string
	RealName   string
	Email      string
	Location   string
	PhotoCount int
}

// FlickrBackendPhotoRecord is a photo record used by [FlickrBackend].
type FlickrBackendPhotoRecord struct {
	ID          string
	Owner       string
	Secret      string
	Server      string
	Title       string
	Description string
	Tags        []string
	Views       int
}

// FlickrBackend implements a subset of the REST API methods and the
// request signature check. Use [FlickrBackend.NewMux] to serve it.
//
// The zero value is ready to use but rejects every API key; set APIKey first.
//
// This struct methods panic for several errors. Only use for testing purposes!
type FlickrBackend struct {
	// APIKey is the API key we accept.
	APIKey string

	// Secret is the OPTIONAL shared secret. When set, every request
	// must carry a valid api_sig parameter.
	Secret string

	// Delay OPTIONALLY maps a method name to an artificial response delay.
	Delay map[string]time.Duration

	calls  map[string]int
	frobs  map[string]string
	mu     sync.Mutex
	photos map[string]*FlickrBackendPhotoRecord
	tokens map[string]string
	users  map[string]*FlickrBackendUserRecord
}

// AddUser adds a user record.
//
// This method is safe to call concurrently with incoming HTTP requests.
func (h *FlickrBackend) AddUser(rec *FlickrBackendUserRecord) {
	defer h.mu.Unlock()
	h.mu.Lock()
	if h.users == nil {
		h.users = make(map[string]*FlickrBackendUserRecord)
	}
	h.users[rec.NSID] = rec
}

// AddPhoto adds a photo record.
//
// This method is safe to call concurrently with incoming HTTP requests.
func (h *FlickrBackend) AddPhoto(rec *FlickrBackendPhotoRecord) {
	defer h.mu.Unlock()
	h.mu.Lock()
	if h.photos == nil {
		h.photos = make(map[string]*FlickrBackendPhotoRecord)
	}
	h.photos[rec.ID] = rec
}

// IssueToken creates an auth token for the given user.
//
// This method is safe to call concurrently with incoming HTTP requests.
func (h *FlickrBackend) IssueToken(nsid string) string {
	defer h.mu.Unlock()
	h.mu.Lock()
	return h.issueTokenLocked(nsid)
}

func (h *FlickrBackend) issueTokenLocked(nsid string) string {
	if h.tokens == nil {
		h.tokens = make(map[string]string)
	}
	token := uuid.Must(uuid.NewRandom()).String()
	h.tokens[token] = nsid
	return token
}

// ApproveFrob marks the given frob as approved by the given user, which is
// what happens when the user visits the login URL in a browser.
func (h *FlickrBackend) ApproveFrob(frob, nsid string) {
	defer h.mu.Unlock()
	h.mu.Lock()
	if h.frobs == nil {
		h.frobs = make(map[string]string)
	}
	h.frobs[frob] = nsid
}

// Calls returns how many times we served the given method.
func (h *FlickrBackend) Calls(method string) int {
	defer h.mu.Unlock()
	h.mu.Lock()
	return h.calls[method]
}

// NewMux constructs an [*http.ServeMux] configured with the correct routing.
func (h *FlickrBackend) NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/services/rest/", h.handleREST())
	return mux
}

// flickrBackendError is an API level failure.
type flickrBackendError struct {
	code int
	msg  string
}

func (h *FlickrBackend) handleREST() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			w.WriteHeader(501)
			return
		}
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(400)
			return
		}
		form := r.Form
		method := form.Get("method")

		h.mu.Lock()
		if h.calls == nil {
			h.calls = make(map[string]int)
		}
		h.calls[method]++
		delay := h.Delay[method]
		h.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}

		var body bytes.Buffer
		failure := h.dispatch(r.Method, form, &body)

		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		if failure != nil {
			fmt.Fprintf(w, `<?xml version="1.0" encoding="utf-8" ?>`+"\n"+
				`<rsp stat="fail"><err code="%d" msg="%s" /></rsp>`, failure.code, escape(failure.msg))
			return
		}
		fmt.Fprintf(w, `<?xml version="1.0" encoding="utf-8" ?>`+"\n"+`<rsp stat="ok">%s</rsp>`, body.String())
	})
}

func (h *FlickrBackend) dispatch(httpMethod string, form url.Values, body *bytes.Buffer) *flickrBackendError {
	if form.Get("api_key") != h.APIKey || h.APIKey == "" {
		return &flickrBackendError{100, "Invalid API Key (Key has invalid format)"}
	}
	if h.Secret != "" && !h.validSignature(form) {
		return &flickrBackendError{96, "Invalid signature"}
	}

	defer h.mu.Unlock()
	h.mu.Lock()

	switch method := form.Get("method"); method {
	case "flickr.test.null":
		if _, err := h.authenticatedLocked(form); err != nil {
			return err
		}
		return nil

	case "flickr.test.echo":
		keys := make([]string, 0, len(form))
		for key := range form {
			if key != "api_sig" {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(body, "<%s>%s</%s>", key, escape(form.Get(key)), key)
		}
		return nil

	case "flickr.test.login":
		user, err := h.authenticatedLocked(form)
		if err != nil {
			return err
		}
		fmt.Fprintf(body, `<user id="%s"><username>%s</username></user>`, user.NSID, escape(user.Username))
		return nil

	case "flickr.auth.getFrob":
		frob := uuid.Must(uuid.NewRandom()).String()
		if h.frobs == nil {
			h.frobs = make(map[string]string)
		}
		h.frobs[frob] = ""
		fmt.Fprintf(body, "<frob>%s</frob>", frob)
		return nil

	case "flickr.auth.getToken":
		nsid, found := h.frobs[form.Get("frob")]
		if !found || nsid == "" {
			return &flickrBackendError{108, "Invalid frob"}
		}
		delete(h.frobs, form.Get("frob"))
		token := h.issueTokenLocked(nsid)
		h.writeAuthLocked(body, token, h.users[nsid])
		return nil

	case "flickr.auth.checkToken":
		user, err := h.authenticatedLocked(form)
		if err != nil {
			return err
		}
		h.writeAuthLocked(body, form.Get("auth_token"), user)
		return nil

	case "flickr.people.findByUsername", "flickr.people.findByEmail":
		var match *FlickrBackendUserRecord
		for _, user := range h.users {
			if (method == "flickr.people.findByUsername" && user.Username == form.Get("username")) ||
				(method == "flickr.people.findByEmail" && user.Email == form.Get("find_email")) {
				match = user
				break
			}
		}
		if match == nil {
			return &flickrBackendError{1, "User not found"}
		}
		fmt.Fprintf(body, `<user id="%s" nsid="%s"><username>%s</username></user>`,
			match.NSID, match.NSID, escape(match.Username))
		return nil

	case "flickr.people.getInfo":
		user := h.users[form.Get("user_id")]
		if user == nil {
			return &flickrBackendError{1, "User not found"}
		}
		fmt.Fprintf(body, `<person id="%s" nsid="%s" ispro="0"><username>%s</username>`+
			`<realname>%s</realname><location>%s</location>`+
			`<photosurl>https://www.example.com/photos/%s/</photosurl>`+
			`<photos><count>%d</count></photos></person>`,
			user.NSID, user.NSID, escape(user.Username), escape(user.RealName),
			escape(user.Location), user.NSID, user.PhotoCount)
		return nil

	case "flickr.photos.getInfo":
		photo := h.photos[form.Get("photo_id")]
		if photo == nil {
			return &flickrBackendError{1, "Photo not found"}
		}
		owner := h.users[photo.Owner]
		ownerName := ""
		if owner != nil {
			ownerName = owner.Username
		}
		fmt.Fprintf(body, `<photo id="%s" secret="%s" server="%s" views="%d">`+
			`<owner nsid="%s" username="%s" /><title>%s</title><description>%s</description>`,
			photo.ID, photo.Secret, photo.Server, photo.Views, photo.Owner,
			escape(ownerName), escape(photo.Title), escape(photo.Description))
		h.writeTagsLocked(body, photo)
		body.WriteString("</photo>")
		return nil

	case "flickr.photos.search":
		return h.searchLocked(form, body)

	case "flickr.photos.addTags":
		if httpMethod != http.MethodPost {
			return &flickrBackendError{99, "Insufficient permissions. Method requires write privileges; none granted."}
		}
		user, err := h.authenticatedLocked(form)
		if err != nil {
			return err
		}
		photo := h.photos[form.Get("photo_id")]
		if photo == nil {
			return &flickrBackendError{1, "Photo not found"}
		}
		if photo.Owner != user.NSID {
			return &flickrBackendError{99, "Insufficient permissions"}
		}
		for _, tag := range strings.Fields(form.Get("tags")) {
			photo.Tags = append(photo.Tags, tag)
		}
		return nil

	case "flickr.tags.getListPhoto":
		photo := h.photos[form.Get("photo_id")]
		if photo == nil {
			return &flickrBackendError{1, "Photo not found"}
		}
		fmt.Fprintf(body, `<photo id="%s">`, photo.ID)
		h.writeTagsLocked(body, photo)
		body.WriteString("</photo>")
		return nil

	default:
		return &flickrBackendError{112, fmt.Sprintf("Method \"%s\" not found", method)}
	}
}

func (h *FlickrBackend) searchLocked(form url.Values, body *bytes.Buffer) *flickrBackendError {
	var matches []*FlickrBackendPhotoRecord
	wantTags := strings.Split(form.Get("tags"), ",")
	for _, photo := range h.photos {
		if userID := form.Get("user_id"); userID != "" && photo.Owner != userID {
			continue
		}
		if form.Get("tags") != "" && !containsAny(photo.Tags, wantTags) {
			continue
		}
		matches = append(matches, photo)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].ID < matches[j].ID
	})
	perPage := 100
	if v := form.Get("per_page"); v != "" {
		fmt.Sscan(v, &perPage)
	}
	page := 1
	if v := form.Get("page"); v != "" {
		fmt.Sscan(v, &page)
	}
	pages := (len(matches) + perPage - 1) / perPage
	fmt.Fprintf(body, `<photos page="%d" pages="%d" perpage="%d" total="%d">`, page, pages, perPage, len(matches))
	for idx := (page - 1) * perPage; idx >= 0 && idx < len(matches) && idx < page*perPage; idx++ {
		photo := matches[idx]
		fmt.Fprintf(body, `<photo id="%s" owner="%s" secret="%s" server="%s" title="%s" ispublic="1" />`,
			photo.ID, photo.Owner, photo.Secret, photo.Server, escape(photo.Title))
	}
	body.WriteString("</photos>")
	return nil
}

func (h *FlickrBackend) writeTagsLocked(body *bytes.Buffer, photo *FlickrBackendPhotoRecord) {
	body.WriteString("<tags>")
	for idx, tag := range photo.Tags {
		fmt.Fprintf(body, `<tag id="%s-%d" author="%s" raw="%s">%s</tag>`,
			photo.ID, idx, photo.Owner, escape(tag), escape(strings.ToLower(tag)))
	}
	body.WriteString("</tags>")
}

func (h *FlickrBackend) writeAuthLocked(body *bytes.Buffer, token string, user *FlickrBackendUserRecord) {
	var nsid, username, fullname string
	if user != nil {
		nsid, username, fullname = user.NSID, user.Username, user.RealName
	}
	fmt.Fprintf(body, `<auth><token>%s</token><perms>write</perms>`+
		`<user nsid="%s" username="%s" fullname="%s" /></auth>`,
		token, nsid, escape(username), escape(fullname))
}

func (h *FlickrBackend) authenticatedLocked(form url.Values) (*FlickrBackendUserRecord, *flickrBackendError) {
	nsid, found := h.tokens[form.Get("auth_token")]
	if !found {
		return nil, &flickrBackendError{98, "Invalid auth token"}
	}
	user := h.users[nsid]
	if user == nil {
		return nil, &flickrBackendError{98, "Invalid auth token"}
	}
	return user, nil
}

func (h *FlickrBackend) validSignature(form url.Values) bool {
	keys := make([]string, 0, len(form))
	for key := range form {
		if key != apisig.SignatureParam {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	var params apiparam.List
	for _, key := range keys {
		params = append(params, apiparam.MustNew(key, form.Get(key)))
	}
	expect, err := apisig.Signature(h.Secret, params)
	return err == nil && expect == form.Get(apisig.SignatureParam)
}

func containsAny(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, strings.TrimSpace(w)) {
				return true
			}
		}
	}
	return false
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

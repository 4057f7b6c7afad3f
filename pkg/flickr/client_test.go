package flickr

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/goflickr/goflickr/internal/apicore"
	"github.com/goflickr/goflickr/internal/httpclientx"
	"github.com/goflickr/goflickr/internal/model"
	"github.com/goflickr/goflickr/internal/model/mocks"
	"github.com/goflickr/goflickr/internal/testingx"
	"github.com/goflickr/goflickr/pkg/asyncx"
	"github.com/google/go-cmp/cmp"
)

const (
	testAPIKey = "0123456789abcdef"
	testSecret = "fedcba9876543210"
)

// newTestEnv returns a backend populated with a user and two photos, the
// server exposing it and a client signing its requests.
func newTestEnv(t *testing.T) (*testingx.FlickrBackend, *httptest.Server, *Client) {
	return newTestEnvWithDelay(t, nil)
}

// newTestEnvWithDelay is like newTestEnv but the backend delays the
// responses to the given methods.
func newTestEnvWithDelay(t *testing.T, delay map[string]time.Duration) (*testingx.FlickrBackend, *httptest.Server, *Client) {
	backend := &testingx.FlickrBackend{APIKey: testAPIKey, Secret: testSecret, Delay: delay}
	backend.AddUser(&testingx.FlickrBackendUserRecord{
		NSID:       "12037949754@N01",
		Username:   "bees",
		RealName:   "Cal Henderson",
		Email:      "bees@example.com",
		Location:   "Vancouver, Canada",
		PhotoCount: 2,
	})
	backend.AddUser(&testingx.FlickrBackendUserRecord{
		NSID:     "99999999@N00",
		Username: "stranger",
	})
	backend.AddPhoto(&testingx.FlickrBackendPhotoRecord{
		ID:     "2733",
		Owner:  "12037949754@N01",
		Secret: "123456",
		Server: "12",
		Title:  "orford castle taster",
		Tags:   []string{"Castle"},
		Views:  7,
	})
	backend.AddPhoto(&testingx.FlickrBackendPhotoRecord{
		ID:     "2734",
		Owner:  "12037949754@N01",
		Secret: "654321",
		Server: "12",
		Title:  "beach",
		Tags:   []string{"sea"},
	})
	srv := testingx.MustNewHTTPServer(backend.NewMux())
	t.Cleanup(srv.Close)
	client := newTestClient(t, srv.URL, model.Credentials{APIKey: testAPIKey, SharedSecret: testSecret})
	return backend, srv, client
}

func newTestClient(t *testing.T, serverURL string, creds model.Credentials) *Client {
	client, err := NewClient(&Config{
		Credentials: creds,
		BaseURL:     serverURL + "/services/rest/",
		AuthURL:     serverURL + "/services/auth/",
	})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("we require an API key", func(t *testing.T) {
		client, err := NewClient(&Config{})
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Fatal("unexpected error", err)
		}
		if client != nil {
			t.Fatal("expected nil client")
		}
	})

	t.Run("we reject unsupported proxy schemes", func(t *testing.T) {
		client, err := NewClient(&Config{
			Credentials: model.Credentials{APIKey: testAPIKey},
			Proxy:       &url.URL{Scheme: "ftp", Host: "127.0.0.1:21"},
		})
		if !errors.Is(err, httpclientx.ErrProxyUnsupportedScheme) {
			t.Fatal("unexpected error", err)
		}
		if client != nil {
			t.Fatal("expected nil client")
		}
	})

	t.Run("we fill the defaults", func(t *testing.T) {
		client, err := NewClient(&Config{Credentials: model.Credentials{APIKey: testAPIKey}})
		if err != nil {
			t.Fatal(err)
		}
		if client.authURL != DefaultAuthURL {
			t.Fatal("unexpected auth URL", client.authURL)
		}
		if client.dispatcher.BaseURL != DefaultBaseURL {
			t.Fatal("unexpected base URL", client.dispatcher.BaseURL)
		}
		if client.logger != model.DiscardLogger {
			t.Fatal("unexpected logger")
		}
	})

	t.Run("SetAuthToken changes the credentials", func(t *testing.T) {
		client, err := NewClient(&Config{Credentials: model.Credentials{APIKey: testAPIKey}})
		if err != nil {
			t.Fatal(err)
		}
		client.SetAuthToken("xyz")
		expect := model.Credentials{APIKey: testAPIKey, AuthToken: "xyz"}
		if diff := cmp.Diff(expect, client.Credentials()); diff != "" {
			t.Fatal(diff)
		}
	})
}

func TestClientFailures(t *testing.T) {
	t.Run("with a wrong shared secret", func(t *testing.T) {
		_, srv, _ := newTestEnv(t)
		client := newTestClient(t, srv.URL, model.Credentials{APIKey: testAPIKey, SharedSecret: "nope"})
		_, err := client.Test.Echo(context.Background(), nil)
		if code := apicore.ErrorCode(err); code != 96 {
			t.Fatal("unexpected code", code, err)
		}
	})

	t.Run("with a wrong API key", func(t *testing.T) {
		_, srv, _ := newTestEnv(t)
		client := newTestClient(t, srv.URL, model.Credentials{APIKey: "nope", SharedSecret: testSecret})
		_, err := client.Test.Echo(context.Background(), nil)
		var apiErr *apicore.APIError
		if !errors.As(err, &apiErr) {
			t.Fatal("expected an API error", err)
		}
		if apiErr.Code != 100 {
			t.Fatal("unexpected code", apiErr.Code)
		}
	})

	t.Run("when the server returns 500", func(t *testing.T) {
		srv := testingx.MustNewHTTPServer(testingx.HTTPHandlerStatus(500))
		defer srv.Close()
		client := newTestClient(t, srv.URL, model.Credentials{APIKey: testAPIKey})
		_, err := client.Test.Login(context.Background())
		var reqErr *RequestFailedError
		if !errors.As(err, &reqErr) {
			t.Fatal("unexpected error", err)
		}
		if reqErr.StatusCode != 500 {
			t.Fatal("unexpected status code", reqErr.StatusCode)
		}
	})

	t.Run("when the connection is reset", func(t *testing.T) {
		srv := testingx.MustNewHTTPServer(testingx.HTTPHandlerReset())
		defer srv.Close()
		client := newTestClient(t, srv.URL, model.Credentials{APIKey: testAPIKey})
		_, err := client.Test.Login(context.Background())
		if err == nil {
			t.Fatal("expected an error")
		}
		if code := apicore.ErrorCode(err); code != 0 {
			t.Fatal("unexpected code", code)
		}
	})

	t.Run("when the payload is not what we expect", func(t *testing.T) {
		srv := testingx.MustNewHTTPServer(testingx.HTTPHandlerBody(`<rsp stat="ok"><nothing/></rsp>`))
		defer srv.Close()
		client := newTestClient(t, srv.URL, model.Credentials{APIKey: testAPIKey})
		_, err := client.People.GetInfo(context.Background(), "12037949754@N01")
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("with a nil context", func(t *testing.T) {
		_, _, client := newTestEnv(t)
		//lint:ignore SA1012 we want to check the error
		future, err := client.Test.EchoAsync(nil, nil)
		if !errors.Is(err, apicore.ErrNilContext) {
			t.Fatal("unexpected error", err)
		}
		if future != nil {
			t.Fatal("expected nil future")
		}
	})
}

func TestAsyncCalls(t *testing.T) {
	t.Run("the future and the event carry the same result", func(t *testing.T) {
		_, _, client := newTestEnv(t)
		var (
			mu       sync.Mutex
			observed []asyncx.Result[map[string]string]
		)
		unsubscribe := client.Test.EchoCompleted.Subscribe(func(r asyncx.Result[map[string]string]) {
			mu.Lock()
			observed = append(observed, r)
			mu.Unlock()
		})
		defer unsubscribe()

		future, err := client.Test.EchoAsync(context.Background(), map[string]string{"foo": "bar"})
		if err != nil {
			t.Fatal(err)
		}
		value, err := future.Wait(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if value["foo"] != "bar" {
			t.Fatal("unexpected value", value)
		}

		mu.Lock()
		defer mu.Unlock()
		if len(observed) != 1 {
			t.Fatal("expected exactly one result, got", len(observed))
		}
		if observed[0].Token != future.Token() {
			t.Fatal("token mismatch")
		}
		if diff := cmp.Diff(value, observed[0].Value); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("API failures reach both the future and the event", func(t *testing.T) {
		_, _, client := newTestEnv(t)
		results := make(chan asyncx.Result[User], 1)
		unsubscribe := client.People.FindByUsernameCompleted.Subscribe(func(r asyncx.Result[User]) {
			results <- r
		})
		defer unsubscribe()

		future, err := client.People.FindByUsernameAsync(context.Background(), "nobody")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := future.Wait(context.Background()); apicore.ErrorCode(err) != 1 {
			t.Fatal("unexpected error", err)
		}
		r := <-results
		if r.Success || apicore.ErrorCode(r.Err) != 1 || r.Token != future.Token() {
			t.Fatalf("unexpected result %+v", r)
		}
	})
}

func TestClientLogging(t *testing.T) {
	_, srv, _ := newTestEnv(t)
	var (
		mu    sync.Mutex
		lines []string
	)
	logger := &mocks.Logger{
		MockDebugf: func(format string, v ...interface{}) {
			mu.Lock()
			lines = append(lines, fmt.Sprintf(format, v...))
			mu.Unlock()
		},
	}
	client, err := NewClient(&Config{
		Credentials: model.Credentials{APIKey: testAPIKey, SharedSecret: testSecret},
		BaseURL:     srv.URL + "/services/rest/",
		Logger:      logger,
	})
	if err != nil {
		t.Fatal(err)
	}
	future, err := client.Test.EchoAsync(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := future.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	expect := fmt.Sprintf("flickr: flickr.test.echo token=%s", future.Token())
	for _, line := range lines {
		if line == expect {
			return
		}
	}
	t.Fatalf("expected %q in %q", expect, lines)
}

func TestSyncCalls(t *testing.T) {
	t.Run("concurrent calls get their own results", func(t *testing.T) {
		backend, _, client := newTestEnvWithDelay(t, map[string]time.Duration{
			"flickr.test.echo": 20 * time.Millisecond,
		})

		const count = 32
		var wg sync.WaitGroup
		errs := make(chan error, count)
		for idx := 0; idx < count; idx++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				expect := fmt.Sprintf("value-%d", idx)
				got, err := client.Test.Echo(context.Background(), map[string]string{"v": expect})
				switch {
				case err != nil:
					errs <- err
				case got["v"] != expect:
					errs <- fmt.Errorf("expected %s, got %s", expect, got["v"])
				}
			}(idx)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatal(err)
		}
		if n := client.Test.EchoCompleted.Subscribers(); n != 0 {
			t.Fatal("leaked subscribers", n)
		}
		if n := backend.Calls("flickr.test.echo"); n != count {
			t.Fatal("unexpected number of calls", n)
		}
	})

	t.Run("a canceled wait returns the context error", func(t *testing.T) {
		_, _, client := newTestEnvWithDelay(t, map[string]time.Duration{
			"flickr.auth.getFrob": 500 * time.Millisecond,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := client.Auth.GetFrob(ctx)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatal("unexpected error", err)
		}
		if n := client.Auth.GetFrobCompleted.Subscribers(); n != 0 {
			t.Fatal("leaked subscribers", n)
		}
	})
}

func TestProxy(t *testing.T) {
	t.Run("HTTP proxy", testHTTPProxy)
	t.Run("SOCKS5 proxy", testSOCKS5Proxy)
}

func testSOCKS5Proxy(t *testing.T) {
	_, srv, _ := newTestEnv(t)
	proxy := testingx.MustNewSOCKS5Proxy()
	defer proxy.Close()

	client, err := NewClient(&Config{
		Credentials: model.Credentials{APIKey: testAPIKey, SharedSecret: testSecret},
		BaseURL:     srv.URL + "/services/rest/",
		Proxy:       proxy.URL(),
	})
	if err != nil {
		t.Fatal(err)
	}
	user, err := client.People.FindByUsername(context.Background(), "bees")
	if err != nil {
		t.Fatal(err)
	}
	if user.NSID != "12037949754@N01" {
		t.Fatal("unexpected user", user)
	}
}

func testHTTPProxy(t *testing.T) {
	_, srv, _ := newTestEnv(t)
	proxy := testingx.NewHTTPProxyHandler(model.DiscardLogger)
	proxySrv := testingx.MustNewHTTPServer(proxy)
	defer proxySrv.Close()

	client, err := NewClient(&Config{
		Credentials: model.Credentials{APIKey: testAPIKey, SharedSecret: testSecret},
		BaseURL:     srv.URL + "/services/rest/",
		Proxy:       &url.URL{Scheme: "http", Host: proxySrv.Listener.Addr().String()},
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := client.Test.Echo(context.Background(), map[string]string{"a": "b"})
	if err != nil {
		t.Fatal(err)
	}
	if got["a"] != "b" {
		t.Fatal("unexpected result", got)
	}
	if proxy.Requests() != 1 {
		t.Fatal("expected one proxied request, got", proxy.Requests())
	}
}

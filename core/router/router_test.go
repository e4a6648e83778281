package router_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pathrouter/core/logger"
	"github.com/dmitrymomot/pathrouter/core/router"
)

func TestRouterStaticRoundTrip(t *testing.T) {
	t.Parallel()

	r := router.New[string]()

	routes := []string{
		"/",
		"/users",
		"/users/profile",
		"/admin",
		"/admin/users",
		"/api/v1/posts",
		"/api/v2/posts",
	}
	for _, route := range routes {
		require.NoError(t, r.Insert("GET", route, route))
	}

	for _, route := range routes {
		t.Run("route_"+route, func(t *testing.T) {
			t.Parallel()

			m := r.Find("GET", route)
			assert.Equal(t, router.OutcomeFound, m.Outcome)
			assert.True(t, m.Matched)
			assert.Equal(t, route, m.Route)
			assert.Equal(t, route, m.Pattern)
			assert.Empty(t, m.Vars)
		})
	}
}

func TestRouterVarsKeyedByName(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	require.NoError(t, r.Insert("GET", "/user/{id}/{name}", "user"))

	m := r.Find("GET", "/user/42/ada")
	require.Equal(t, router.OutcomeFound, m.Outcome)
	assert.Equal(t, map[string]string{"id": "42", "name": "ada"}, m.Vars)
	assert.Equal(t, "42", m.Var("id"))
	assert.Equal(t, "ada", m.Var("name"))
	assert.Empty(t, m.Var("missing"))
}

func TestRouterParamRoutes(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	r.MustInsert("GET", "/users/{id}", "user")
	r.MustInsert("GET", "/users/{id}/posts/{postID}", "post")
	r.MustInsert("GET", "/posts/{id}/edit", "edit")
	r.MustInsert("GET", "/files/{filename}", "file")

	tests := []struct {
		path  string
		route string
		vars  map[string]string
	}{
		{"/users/123", "user", map[string]string{"id": "123"}},
		{"/users/123/posts/456", "post", map[string]string{"id": "123", "postID": "456"}},
		{"/posts/456/edit", "edit", map[string]string{"id": "456"}},
		{"/files/test.backup.txt", "file", map[string]string{"filename": "test.backup.txt"}},
		{"/files/test%20file.txt", "file", map[string]string{"filename": "test%20file.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			m := r.Find("GET", tt.path)
			require.Equal(t, router.OutcomeFound, m.Outcome)
			assert.Equal(t, tt.route, m.Route)
			assert.Equal(t, tt.vars, m.Vars)
		})
	}

	assert.Equal(t, router.OutcomeNotFound, r.Find("GET", "/users/").Outcome)
	assert.Equal(t, router.OutcomeNotFound, r.Find("GET", "/posts/1/view").Outcome)
}

func TestRouterRegexpRoutes(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	r.MustInsert("GET", "/users/{id:[0-9]+}", "user")
	r.MustInsert("GET", "/files/{filename:[a-zA-Z0-9._-]+}", "file")
	r.MustInsert("GET", "/posts/{slug:[a-z-]+}/{id:[0-9]+}", "post")

	tests := []struct {
		path    string
		matched bool
		vars    map[string]string
	}{
		{"/users/123", true, map[string]string{"id": "123"}},
		{"/files/image_file.jpg", true, map[string]string{"filename": "image_file.jpg"}},
		{"/posts/hello-world/123", true, map[string]string{"slug": "hello-world", "id": "123"}},
		{"/users/abc", false, nil},
		{"/users/12a3", false, nil},
		{"/files/bad@file.txt", false, nil},
		{"/posts/hello_world/123", false, nil},
		{"/posts/hello-world/abc", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			m := r.Find("GET", tt.path)
			assert.Equal(t, tt.matched, m.Matched)
			assert.Equal(t, tt.vars, m.Vars)
		})
	}
}

func TestRouterPriority(t *testing.T) {
	t.Parallel()

	t.Run("regexp before param", func(t *testing.T) {
		t.Parallel()

		r := router.New[string]()
		r.MustInsert("GET", "/files/{id}", "param")
		r.MustInsert("GET", `/files/{id:\d+}`, "regexp")

		assert.Equal(t, "regexp", r.Find("GET", "/files/42").Route)
		assert.Equal(t, "param", r.Find("GET", "/files/abc").Route)
	})

	t.Run("static regexp param catch-all", func(t *testing.T) {
		t.Parallel()

		r := router.New[string]()
		r.MustInsert("GET", "/users/*", "wildcard")
		r.MustInsert("GET", "/users/{id}", "param")
		r.MustInsert("GET", "/users/{id:[0-9]+}", "numeric")
		r.MustInsert("GET", "/users/admin", "admin")

		tests := map[string]string{
			"/users/admin":          "admin",
			"/users/123":            "numeric",
			"/users/abc":            "param",
			"/users/something/else": "wildcard",
		}
		for path, want := range tests {
			assert.Equal(t, want, r.Find("GET", path).Route, path)
		}
		assert.Equal(t, "something/else", r.Find("GET", "/users/something/else").Var("*"))
	})

	t.Run("longest static prefix", func(t *testing.T) {
		t.Parallel()

		r := router.New[string]()
		r.MustInsert("GET", "/api/v1/users", "api-v1-users")
		r.MustInsert("GET", "/api", "api")
		r.MustInsert("GET", "/api/v1", "api-v1")

		assert.Equal(t, "api", r.Find("GET", "/api").Route)
		assert.Equal(t, "api-v1", r.Find("GET", "/api/v1").Route)
		assert.Equal(t, "api-v1-users", r.Find("GET", "/api/v1/users").Route)
	})

	t.Run("static branch backtracks to param", func(t *testing.T) {
		t.Parallel()

		r := router.New[string]()
		r.MustInsert("GET", "/users/new/confirm", "confirm")
		r.MustInsert("GET", "/users/{id}/edit", "edit")

		m := r.Find("GET", "/users/new/edit")
		require.Equal(t, router.OutcomeFound, m.Outcome)
		assert.Equal(t, "edit", m.Route)
		assert.Equal(t, map[string]string{"id": "new"}, m.Vars)
	})
}

func TestRouterParamNeverCrossesSlash(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	r.MustInsert("GET", "/a/{x}/b", "ab")

	assert.Equal(t, router.OutcomeNotFound, r.Find("GET", "/a/y/z/b").Outcome)

	m := r.Find("GET", "/a/y/b")
	assert.Equal(t, router.OutcomeFound, m.Outcome)
	assert.Equal(t, "y", m.Var("x"))
}

func TestRouterCatchAll(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	r.MustInsert("GET", "/static/*", "static")
	r.MustInsert("GET", "/files/{dir}/*", "files")
	r.MustInsert("GET", "/assets/*filepath", "assets")

	tests := []struct {
		path string
		vars map[string]string
	}{
		{"/static/css/app.css", map[string]string{"*": "css/app.css"}},
		{"/static/fonts/roboto/regular.woff", map[string]string{"*": "fonts/roboto/regular.woff"}},
		{"/static/", map[string]string{"*": ""}},
		{"/files/media/video/demo.mp4", map[string]string{"dir": "media", "*": "video/demo.mp4"}},
		{"/assets/js/app.js", map[string]string{"filepath": "js/app.js"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			m := r.Find("GET", tt.path)
			require.Equal(t, router.OutcomeFound, m.Outcome)
			assert.Equal(t, tt.vars, m.Vars)
		})
	}

	assert.Equal(t, router.OutcomeNotFound, r.Find("GET", "/static").Outcome)
}

func TestRouterOptionalCatchAll(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	require.NoError(t, r.Insert("GET", "/docs/?*", "docs"))

	m := r.Find("GET", "/docs")
	assert.Equal(t, router.OutcomeFound, m.Outcome)
	assert.Equal(t, "/docs", m.Pattern)

	m = r.Find("GET", "/docs/guide/intro")
	assert.Equal(t, router.OutcomeFound, m.Outcome)
	assert.Equal(t, "/docs/*", m.Pattern)
	assert.Equal(t, "guide/intro", m.Var("*"))

	assert.Equal(t, []router.Route{
		{Method: "GET", Pattern: "/docs"},
		{Method: "GET", Pattern: "/docs/*"},
	}, r.Routes())
}

func TestRouterColonShorthand(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	require.NoError(t, r.Insert("GET", "/users/:id/posts/:post_id", "post"))
	require.NoError(t, r.Insert("POST", "/v1/models/gpt:generate", "generate"))

	m := r.Find("GET", "/users/7/posts/9")
	require.Equal(t, router.OutcomeFound, m.Outcome)
	assert.Equal(t, "/users/{id}/posts/{post_id}", m.Pattern)
	assert.Equal(t, map[string]string{"id": "7", "post_id": "9"}, m.Vars)

	assert.True(t, r.Exists("POST", "/v1/models/gpt:generate"))
}

func TestRouterMethodNotAllowed(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	r.MustInsert("GET", "/x", "x")

	m := r.Find("POST", "/x")
	assert.Equal(t, router.OutcomeMethodNotAllowed, m.Outcome)
	assert.False(t, m.Matched)
	assert.Equal(t, []string{"GET"}, m.Allowed)
	assert.Equal(t, 405, m.Status())

	m = r.Find("GET", "/y")
	assert.Equal(t, router.OutcomeNotFound, m.Outcome)
	assert.Nil(t, m.Allowed)
	assert.Equal(t, 404, m.Status())
}

func TestRouterAllowedAcrossBranches(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	r.MustInsert("GET", "/a/{id}", "get")
	r.MustInsert("POST", "/a/static", "post")
	r.MustInsert("DELETE", "/a/static", "delete")

	m := r.Find("PUT", "/a/static")
	assert.Equal(t, router.OutcomeMethodNotAllowed, m.Outcome)
	assert.Equal(t, []string{"GET", "POST", "DELETE"}, m.Allowed)

	// A later branch that fully matches wins over an earlier method mismatch.
	m = r.Find("GET", "/a/static")
	assert.Equal(t, router.OutcomeFound, m.Outcome)
	assert.Equal(t, "get", m.Route)
	assert.Equal(t, "static", m.Var("id"))
}

func TestRouterMethods(t *testing.T) {
	t.Parallel()

	t.Run("any method", func(t *testing.T) {
		t.Parallel()

		r := router.New[string]()
		require.NoError(t, r.Insert(router.MethodAny, "/any", "any"))

		for _, method := range []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "CONNECT", "OPTIONS", "TRACE"} {
			assert.Equal(t, "any", r.Find(method, "/any").Route, method)
		}
		assert.Len(t, r.Routes(), 9)
	})

	t.Run("registration is case insensitive", func(t *testing.T) {
		t.Parallel()

		r := router.New[string]()
		require.NoError(t, r.Insert("get", "/x", "x"))
		assert.Equal(t, router.OutcomeFound, r.Find("GET", "/x").Outcome)
	})

	t.Run("request method is exact", func(t *testing.T) {
		t.Parallel()

		r := router.New[string]()
		r.MustInsert("GET", "/x", "x")

		m := r.Find("get", "/x")
		assert.Equal(t, router.OutcomeMethodNotAllowed, m.Outcome)
		assert.Equal(t, []string{"GET"}, m.Allowed)
	})

	t.Run("same method replaces route", func(t *testing.T) {
		t.Parallel()

		r := router.New[string]()
		r.MustInsert("GET", "/test", "first")
		r.MustInsert("GET", "/test", "second")

		assert.Equal(t, "second", r.Find("GET", "/test").Route)
		assert.Len(t, r.Routes(), 1)
	})
}

func TestRouterInsertErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		method  string
		pattern string
		err     error
	}{
		{"unknown method", "FETCH", "/x", router.ErrInvalidMethod},
		{"empty method", "", "/x", router.ErrInvalidMethod},
		{"empty pattern", "GET", "", router.ErrInvalidPattern},
		{"relative pattern", "GET", "users", router.ErrInvalidPattern},
		{"unclosed param", "GET", "/users/{id", router.ErrParamDelimiter},
		{"empty param", "GET", "/users/{}", router.ErrEmptyParam},
		{"empty regexp", "GET", "/users/{id:}", router.ErrEmptyRegexp},
		{"bad regexp", "GET", "/users/{id:[0-9+}", router.ErrInvalidRegexp},
		{"wildcard in middle", "GET", "/files/*/meta", router.ErrWildcardPosition},
		{"param after wildcard", "GET", "/files/*/{id}", router.ErrWildcardPosition},
		{"duplicate key", "GET", "/a/{id}/b/{id}", router.ErrDuplicateParam},
		{"stray closing brace", "GET", "/a}", router.ErrParamDelimiter},
		{"closing brace after param", "GET", "/{id}}", router.ErrParamDelimiter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := router.New[string]()
			err := r.Insert(tt.method, tt.pattern, "route")
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, r.Routes(), "failed insert must leave the router unchanged")
			assert.Panics(t, func() { r.MustInsert(tt.method, tt.pattern, "route") })
		})
	}
}

func TestRouterStaticFastPathParity(t *testing.T) {
	t.Parallel()

	patterns := []string{"/", "/health", "/api/users", "/api/users/me", "/users/{id}", "/users/new", "/static/*"}
	paths := []string{"/", "/health", "/api/users", "/api/users/me", "/users/new", "/users/42", "/static/app.js", "/nope"}

	fast := router.New[string]()
	slow := router.New[string](router.WithoutStaticFastPath[string]())
	for _, p := range patterns {
		fast.MustInsert("GET", p, p)
		slow.MustInsert("GET", p, p)
	}
	fast.MustInsert("POST", "/health", "post-health")
	slow.MustInsert("POST", "/health", "post-health")

	for _, method := range []string{"GET", "POST", "DELETE"} {
		for _, path := range paths {
			assert.Equal(t, slow.Find(method, path), fast.Find(method, path), "%s %s", method, path)
			assert.Equal(t, slow.Exists(method, path), fast.Exists(method, path), "%s %s", method, path)
		}
	}
}

func TestRouterStaticFallsThroughToTrie(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	r.MustInsert("POST", "/users/new", "create-form")
	r.MustInsert("GET", "/users/{id}", "show")

	m := r.Find("GET", "/users/new")
	require.Equal(t, router.OutcomeFound, m.Outcome)
	assert.Equal(t, "show", m.Route)
	assert.Equal(t, "new", m.Var("id"))
}

func TestRouterExistsMatchesFind(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	r.MustInsert("GET", "/users/{id:[0-9]+}", "user")
	r.MustInsert("GET", "/static/*", "static")

	for _, path := range []string{"/users/1", "/users/x", "/static/a/b", "/other"} {
		for _, method := range []string{"GET", "POST"} {
			assert.Equal(t, r.Find(method, path).Matched, r.Exists(method, path), "%s %s", method, path)
		}
	}
}

func TestRouterFavicon(t *testing.T) {
	t.Parallel()

	r := router.New(router.WithFaviconRoute("favicon"))
	r.MustInsert("GET", "/", "home")

	m := r.Find("GET", "/favicon.ico")
	assert.Equal(t, router.OutcomeAssetNotFound, m.Outcome)
	assert.Equal(t, "favicon", m.Route)
	assert.False(t, m.Matched)
	assert.Equal(t, 404, m.Status())

	r.MustInsert("GET", "/favicon.ico", "icon")
	m = r.Find("GET", "/favicon.ico")
	assert.Equal(t, router.OutcomeFound, m.Outcome)
	assert.Equal(t, "icon", m.Route)
}

func TestRouterCaseInsensitive(t *testing.T) {
	t.Parallel()

	r := router.New(router.WithCaseInsensitive[string]())
	r.MustInsert("GET", "/Users/{ID}", "user")
	r.MustInsert("GET", "/About", "about")
	r.MustInsert("GET", "/codes/{code:[a-z]+}", "code")

	m := r.Find("GET", "/USERS/Ada")
	require.Equal(t, router.OutcomeFound, m.Outcome)
	assert.Equal(t, "Ada", m.Var("ID"))
	assert.Equal(t, "/Users/{ID}", m.Pattern)

	assert.True(t, r.Exists("GET", "/about"))
	assert.True(t, r.Exists("GET", "/ABOUT"))

	// Regexp constraints see the folded value.
	m = r.Find("GET", "/codes/ABC")
	require.Equal(t, router.OutcomeFound, m.Outcome)
	assert.Equal(t, "ABC", m.Var("code"))

	// Offsets shift when a rune folds to a different width, even if the
	// total length stays the same.
	r.MustInsert("GET", "/pair/{a}/{b}", "pair")
	m = r.Find("GET", "/pair/ŉ/ſ")
	require.Equal(t, router.OutcomeFound, m.Outcome)
	assert.Equal(t, map[string]string{"a": "ʼn", "b": "s"}, m.Vars)

	m = r.Find("GET", "/PAIR/Élan/Ørsted")
	require.Equal(t, router.OutcomeFound, m.Outcome)
	assert.Equal(t, map[string]string{"a": "Élan", "b": "Ørsted"}, m.Vars)

	sensitive := router.New[string]()
	sensitive.MustInsert("GET", "/About", "about")
	assert.False(t, sensitive.Exists("GET", "/about"))
}

func TestRouterRoutes(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	r.MustInsert("POST", "/users", "create")
	r.MustInsert("GET", "/users", "list")
	r.MustInsert("GET", "/users/{id}", "show")

	assert.Equal(t, []router.Route{
		{Method: "GET", Pattern: "/users"},
		{Method: "POST", Pattern: "/users"},
		{Method: "GET", Pattern: "/users/{id}"},
	}, r.Routes())

	assert.Empty(t, router.New[string]().Routes())
}

func TestRouterDestroy(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter(), logger.WithLevel(slog.LevelDebug))

	r := router.New(router.WithLogger[string](log))
	r.MustInsert("GET", "/x", "x")
	assert.Contains(t, buf.String(), `"msg":"route registered"`)

	r.Destroy()
	assert.Contains(t, buf.String(), `"msg":"router destroyed"`)
	assert.NotPanics(t, r.Destroy)

	assert.PanicsWithValue(t, router.ErrDestroyed, func() { r.Find("GET", "/x") })
	assert.PanicsWithValue(t, router.ErrDestroyed, func() { r.Exists("GET", "/x") })
	assert.PanicsWithValue(t, router.ErrDestroyed, func() { _ = r.Insert("GET", "/y", "y") })
	assert.PanicsWithValue(t, router.ErrDestroyed, func() { r.Routes() })
}

func TestRouterLogsReplacement(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter(), logger.WithLevel(slog.LevelDebug))

	r := router.New(router.WithLogger[string](log))
	r.MustInsert("GET", "/x", "first")
	r.MustInsert("GET", "/x", "second")

	assert.Contains(t, buf.String(), `"msg":"route replaced"`)
	assert.Contains(t, buf.String(), `"pattern":"/x"`)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := router.DefaultConfig()
	cfg.CaseInsensitive = true
	cfg.StaticFastPath = false

	r := router.NewFromConfig[string](cfg)
	r.MustInsert("GET", "/Health", "health")
	assert.True(t, r.Exists("GET", "/HEALTH"))
}

func TestRouterConcurrentFind(t *testing.T) {
	t.Parallel()

	r := router.New[string]()
	for i := range 50 {
		r.MustInsert("GET", fmt.Sprintf("/static/%d", i), "static")
		r.MustInsert("GET", fmt.Sprintf("/users/%d/{id:[0-9]+}", i), "user")
	}
	r.MustInsert("GET", "/files/*", "files")

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				n := (g + i) % 50
				m := r.Find("GET", fmt.Sprintf("/users/%d/%d", n, i))
				assert.Equal(t, "user", m.Route)
				assert.Equal(t, fmt.Sprint(i), m.Var("id"))

				assert.True(t, r.Exists("GET", fmt.Sprintf("/static/%d", n)))
				assert.Equal(t, "a/b", r.Find("GET", "/files/a/b").Var("*"))
			}
		}()
	}
	wg.Wait()
}

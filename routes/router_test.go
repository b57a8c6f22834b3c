package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/microblog/config"
	"github.com/cppla/microblog/models"
	"github.com/cppla/microblog/services"
	"github.com/cppla/microblog/utils"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type sessionData struct {
	LoggedIn bool   `json:"logged_in"`
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
	Token    string `json:"token"`
}

type feedData struct {
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Total    int64         `json:"total"`
	HasMore  bool          `json:"has_more"`
	Posts    []models.Post `json:"posts"`
	User     *models.User  `json:"user"`
}

type testApp struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	users  map[string]*models.User
}

// setupTestApp configures the service for tests, opens an in-memory SQLite database,
// creates alice and bob, and builds the router. opts adjust the config before anything opens.
func setupTestApp(t *testing.T, opts ...func(*config.AppConfig)) *testApp {
	t.Helper()

	cfg := config.Defaults()
	cfg.JWTSecret = "test-secret"
	cfg.DBDriver = "sqlite"
	cfg.DatabaseURI = ":memory:"
	cfg.GinMode = "test"
	cfg.GinPath = ""
	cfg.LogLevel = "silent"
	cfg.RedisEnabled = false
	cfg.RateLimitPerMinute = 1000
	for _, opt := range opts {
		opt(&cfg)
	}
	config.Override(cfg)
	t.Cleanup(config.Reset)
	// the Redis client is a process singleton: rebuild it from this config and drop it afterwards
	utils.CloseRedis()
	t.Cleanup(func() { utils.CloseRedis() })

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := config.Migrate(db, &models.User{}, &models.Post{}, &models.PageView{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	app := &testApp{t: t, db: db, users: map[string]*models.User{}}
	auth := services.NewAuthService(db)
	for _, u := range []services.NewUser{
		{Username: "alice", Name: "Alice Liddell", Password: "rabbit-hole", Status: "late"},
		{Username: "bob", Name: "Bob", Password: "builder"},
	} {
		user, err := auth.CreateUser(context.Background(), u)
		if err != nil {
			t.Fatalf("create user %s: %v", u.Username, err)
		}
		app.users[u.Username] = user
	}

	app.router = SetupRouter(db)
	return app
}

func (a *testApp) do(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			a.t.Fatalf("decode %s %s response: %v\n%s", req.Method, req.URL, err, rec.Body.String())
		}
	}
	return rec, env
}

func (a *testApp) get(path string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return a.do(req)
}

func (a *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return a.do(req)
}

func (a *testApp) login(username, password string) *http.Cookie {
	a.t.Helper()
	rec, env := a.postForm("/login", url.Values{"username": {username}, "password": {password}})
	if rec.Code != http.StatusOK {
		a.t.Fatalf("login %s: status %d: %s", username, rec.Code, env.Message)
	}
	return sessionCookie(a.t, rec)
}

func (a *testApp) seedPosts(username string, n int, base time.Time) []uint {
	a.t.Helper()
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		post := models.Post{
			Body:      fmt.Sprintf("%s post %d", username, i),
			UserID:    a.users[username].ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := a.db.Create(&post).Error; err != nil {
			a.t.Fatalf("seed post: %v", err)
		}
		ids = append(ids, post.ID)
	}
	return ids
}

// withRedis starts an in-process Redis and points the config at it.
func withRedis(t *testing.T) (*miniredis.Miniredis, func(*config.AppConfig)) {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatalf("miniredis port: %v", err)
	}
	return mr, func(c *config.AppConfig) {
		c.RedisEnabled = true
		c.RedisHost = mr.Host()
		c.RedisPort = port
	}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	name := config.Get().SessionCookieName
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("response did not set the %q cookie", name)
	return nil
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode data: %v\n%s", err, raw)
	}
	return out
}

func TestLoginEstablishesSession(t *testing.T) {
	app := setupTestApp(t)
	alice := app.users["alice"]

	rec, env := app.postForm("/login", url.Values{"username": {"alice"}, "password": {"rabbit-hole"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, env.Message)
	}
	if !strings.Contains(env.Message, "Alice Liddell") {
		t.Errorf("greeting %q should name the user", env.Message)
	}
	data := decode[sessionData](t, env.Data)
	if !data.LoggedIn || data.UserID != alice.ID || data.UserName != "Alice Liddell" {
		t.Errorf("login data = %+v", data)
	}

	cookie := sessionCookie(t, rec)
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	claims, err := utils.ParseToken(cookie.Value)
	if err != nil {
		t.Fatalf("session cookie is not a valid token: %v", err)
	}
	if !claims.LoggedIn || claims.UserID != alice.ID || claims.UserName != "Alice Liddell" {
		t.Errorf("claims = %+v", claims)
	}

	_, env = app.get("/session", cookie)
	session := decode[sessionData](t, env.Data)
	if !session.LoggedIn || session.UserID != alice.ID {
		t.Errorf("session after login = %+v", session)
	}
}

func TestLoginAcceptsJSON(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"bob","password":"builder"}`))
	req.Header.Set("Content-Type", "application/json")
	rec, env := app.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, env.Message)
	}
	data := decode[sessionData](t, env.Data)
	if data.Token == "" {
		t.Fatal("expected a token for API clients")
	}

	// the token also works as a bearer credential
	req = httptest.NewRequest(http.MethodGet, "/posts/", nil)
	req.Header.Set("Authorization", "Bearer "+data.Token)
	if rec, _ := app.do(req); rec.Code != http.StatusOK {
		t.Errorf("bearer feed status = %d, want 200", rec.Code)
	}
}

func TestLoginFailures(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantMsg    string
	}{
		{"unknown user", url.Values{"username": {"mallory"}, "password": {"x"}}, http.StatusUnauthorized, "no such user"},
		{"wrong password", url.Values{"username": {"alice"}, "password": {"nope"}}, http.StatusUnauthorized, "wrong password"},
		{"missing password", url.Values{"username": {"alice"}}, http.StatusBadRequest, "required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := app.postForm("/login", tc.form)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if env.Message == "" || !strings.Contains(env.Message, tc.wantMsg) {
				t.Errorf("message = %q, want it to contain %q", env.Message, tc.wantMsg)
			}
			for _, c := range rec.Result().Cookies() {
				if c.Name == config.Get().SessionCookieName && c.Value != "" {
					t.Error("failed login must not set a session")
				}
			}
		})
	}
}

func TestLogoutClearsSession(t *testing.T) {
	app := setupTestApp(t)
	cookie := app.login("alice", "rabbit-hole")

	rec, env := app.get("/logout", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}
	if env.Message == "" {
		t.Error("logout should carry a notice")
	}
	cleared := sessionCookie(t, rec)
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Errorf("logout should expire the cookie, got %+v", cleared)
	}

	// a client replaying the old cookie no longer has a session
	_, env = app.get("/session", cookie)
	var raw map[string]interface{}
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if raw["logged_in"] != false {
		t.Errorf("logged_in = %v after logout", raw["logged_in"])
	}
	for _, key := range []string{"user_id", "user_name"} {
		if _, ok := raw[key]; ok {
			t.Errorf("session still carries %s after logout", key)
		}
	}
	if rec, _ := app.get("/posts/", cookie); rec.Code != http.StatusUnauthorized {
		t.Errorf("revoked session reached the feed: status %d", rec.Code)
	}
}

func TestLogoutWithoutSession(t *testing.T) {
	app := setupTestApp(t)
	if rec, _ := app.get("/logout"); rec.Code != http.StatusOK {
		t.Errorf("logout without session: status %d, want 200", rec.Code)
	}
}

func TestLoginRequired(t *testing.T) {
	app := setupTestApp(t)

	if rec, _ := app.get("/posts/"); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous feed status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/posts/alice/", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec, _ := app.do(req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Errorf("browser should be redirected to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	if rec, _ := app.postForm("/posts/create", url.Values{"body": {"hi"}}); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous create status = %d, want 401", rec.Code)
	}

	forged := &http.Cookie{Name: config.Get().SessionCookieName, Value: "not-a-token"}
	if rec, _ := app.get("/posts/", forged); rec.Code != http.StatusUnauthorized {
		t.Errorf("forged cookie status = %d, want 401", rec.Code)
	}
}

func TestCreatePostAppearsInFeed(t *testing.T) {
	app := setupTestApp(t)
	bob := app.users["bob"]
	app.seedPosts("alice", 3, time.Now().Add(-time.Hour))
	cookie := app.login("bob", "builder")

	rec, env := app.postForm("/posts/create", url.Values{"body": {"Can we fix it?"}}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, env.Message)
	}
	created := decode[struct {
		Post models.Post `json:"post"`
	}](t, env.Data).Post
	if created.UserID != bob.ID || created.Body != "Can we fix it?" {
		t.Fatalf("created post = %+v", created)
	}

	_, env = app.get("/posts/", cookie)
	feed := decode[feedData](t, env.Data)
	if len(feed.Posts) != 4 {
		t.Fatalf("feed has %d posts, want 4", len(feed.Posts))
	}
	if feed.Posts[0].ID != created.ID {
		t.Errorf("newest post should lead the feed, got id %d want %d", feed.Posts[0].ID, created.ID)
	}

	_, env = app.get("/posts/bob/", cookie)
	own := decode[feedData](t, env.Data)
	if len(own.Posts) != 1 || own.Posts[0].UserID != bob.ID {
		t.Errorf("bob's feed = %+v", own.Posts)
	}
}

func TestCreatePostValidation(t *testing.T) {
	app := setupTestApp(t)
	cookie := app.login("alice", "rabbit-hole")

	if rec, _ := app.postForm("/posts/create", url.Values{"body": {"   "}}, cookie); rec.Code != http.StatusBadRequest {
		t.Errorf("blank body status = %d, want 400", rec.Code)
	}
	long := strings.Repeat("a", config.Get().PostMaxLength+1)
	if rec, _ := app.postForm("/posts/create", url.Values{"body": {long}}, cookie); rec.Code != http.StatusBadRequest {
		t.Errorf("long body status = %d, want 400", rec.Code)
	}
}

func TestFeedRoutes(t *testing.T) {
	app := setupTestApp(t)
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	aliceIDs := app.seedPosts("alice", 30, base)
	bobIDs := app.seedPosts("bob", 3, base.Add(-24*time.Hour))
	cookie := app.login("alice", "rabbit-hole")

	t.Run("all posts page 1", func(t *testing.T) {
		rec, env := app.get("/posts/", cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		feed := decode[feedData](t, env.Data)
		if feed.Page != 1 || len(feed.Posts) != 25 || !feed.HasMore || feed.Total != 33 {
			t.Fatalf("page=%d posts=%d hasMore=%v total=%d", feed.Page, len(feed.Posts), feed.HasMore, feed.Total)
		}
		if feed.User != nil {
			t.Error("unfiltered feed must not carry a user")
		}
		for i := 1; i < len(feed.Posts); i++ {
			if feed.Posts[i].CreatedAt.After(feed.Posts[i-1].CreatedAt) {
				t.Fatalf("feed not newest first at %d", i)
			}
		}
		if feed.Posts[0].ID != aliceIDs[29] {
			t.Errorf("first post id = %d, want %d", feed.Posts[0].ID, aliceIDs[29])
		}
	})

	t.Run("all posts page 2", func(t *testing.T) {
		_, env := app.get("/posts/2", cookie)
		feed := decode[feedData](t, env.Data)
		if feed.Page != 2 || len(feed.Posts) != 8 || feed.HasMore {
			t.Fatalf("page=%d posts=%d hasMore=%v", feed.Page, len(feed.Posts), feed.HasMore)
		}
		// offset 25: the five oldest of alice's posts, then bob's three
		if feed.Posts[0].ID != aliceIDs[4] || feed.Posts[7].ID != bobIDs[0] {
			t.Errorf("page 2 starts at %d and ends at %d", feed.Posts[0].ID, feed.Posts[7].ID)
		}
	})

	t.Run("one user", func(t *testing.T) {
		_, env := app.get("/posts/bob/", cookie)
		feed := decode[feedData](t, env.Data)
		if feed.User == nil || feed.User.Username != "bob" {
			t.Fatalf("user = %+v", feed.User)
		}
		if len(feed.Posts) != 3 {
			t.Fatalf("bob has %d posts in feed, want 3", len(feed.Posts))
		}
		for i, p := range feed.Posts {
			if p.UserID != app.users["bob"].ID {
				t.Errorf("post %d is not bob's", p.ID)
			}
			if p.ID != bobIDs[2-i] {
				t.Errorf("position %d id = %d, want %d", i, p.ID, bobIDs[2-i])
			}
		}
	})

	t.Run("one user without trailing slash", func(t *testing.T) {
		rec, env := app.get("/posts/bob", cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if feed := decode[feedData](t, env.Data); len(feed.Posts) != 3 {
			t.Errorf("got %d posts", len(feed.Posts))
		}
	})

	t.Run("one user page 2", func(t *testing.T) {
		_, env := app.get("/posts/alice/2", cookie)
		feed := decode[feedData](t, env.Data)
		if feed.Page != 2 || len(feed.Posts) != 5 {
			t.Fatalf("page=%d posts=%d", feed.Page, len(feed.Posts))
		}
		if feed.Posts[0].ID != aliceIDs[4] {
			t.Errorf("first id = %d, want %d", feed.Posts[0].ID, aliceIDs[4])
		}
	})

	for _, path := range []string{"/posts/nobody/", "/posts/alice/two", "/posts/alice/2/extra"} {
		if rec, _ := app.get(path, cookie); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, rec.Code)
		}
	}
}

func TestHomeAndStats(t *testing.T) {
	app := setupTestApp(t)
	cookie := app.login("alice", "rabbit-hole")
	app.seedPosts("alice", 2, time.Now().Add(-time.Minute))

	rec, env := app.get("/", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("home status = %d", rec.Code)
	}
	home := decode[struct {
		Session sessionData `json:"session"`
	}](t, env.Data)
	if !home.Session.LoggedIn || home.Session.UserID != app.users["alice"].ID {
		t.Errorf("home session = %+v", home.Session)
	}

	app.get("/posts/", cookie)
	_, env = app.get("/stats")
	stats := decode[struct {
		Users      int64 `json:"user_count"`
		Posts      int64 `json:"post_count"`
		ViewsToday int64 `json:"page_views_today"`
	}](t, env.Data)
	if stats.Users != 2 || stats.Posts != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ViewsToday < 2 {
		t.Errorf("page views today = %d, want at least 2", stats.ViewsToday)
	}
}

func TestNumericUsernameFeed(t *testing.T) {
	app := setupTestApp(t)
	user, err := services.NewAuthService(app.db).CreateUser(context.Background(),
		services.NewUser{Username: "42", Password: "answer"})
	if err != nil {
		t.Fatalf("create user 42: %v", err)
	}
	app.users["42"] = user
	app.seedPosts("42", 2, time.Now().Add(-time.Hour))
	app.seedPosts("alice", 1, time.Now().Add(-2*time.Hour))
	cookie := app.login("alice", "rabbit-hole")

	rec, env := app.get("/posts/42/", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	feed := decode[feedData](t, env.Data)
	if feed.User == nil || feed.User.Username != "42" || feed.Page != 1 || len(feed.Posts) != 2 {
		t.Fatalf("user 42 feed: user=%+v page=%d posts=%d", feed.User, feed.Page, len(feed.Posts))
	}

	// without the trailing slash the segment is a page of the global feed
	_, env = app.get("/posts/42", cookie)
	if feed := decode[feedData](t, env.Data); feed.User != nil || feed.Page != 42 || len(feed.Posts) != 0 {
		t.Errorf("/posts/42: user=%+v page=%d posts=%d", feed.User, feed.Page, len(feed.Posts))
	}

	_, env = app.get("/posts/42/2", cookie)
	if feed := decode[feedData](t, env.Data); feed.User == nil || feed.Page != 2 || len(feed.Posts) != 0 {
		t.Errorf("/posts/42/2: user=%+v page=%d posts=%d", feed.User, feed.Page, len(feed.Posts))
	}
}

func TestFeedPageOutOfRange(t *testing.T) {
	app := setupTestApp(t)
	app.seedPosts("alice", 3, time.Now().Add(-time.Hour))
	cookie := app.login("alice", "rabbit-hole")

	rec, env := app.get("/posts/368934881474191034", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if feed := decode[feedData](t, env.Data); len(feed.Posts) != 0 || feed.HasMore {
		t.Errorf("huge page returned %d posts, hasMore=%v", len(feed.Posts), feed.HasMore)
	}

	for _, path := range []string{"/posts/99999999999999999999", "/posts/alice/99999999999999999999"} {
		if rec, _ := app.get(path, cookie); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, rec.Code)
		}
	}
}

func TestFeedCacheInvalidatedOnCreate(t *testing.T) {
	mr, redisOpt := withRedis(t)
	app := setupTestApp(t, redisOpt)
	app.seedPosts("alice", 2, time.Now().Add(-time.Hour))
	cookie := app.login("alice", "rabbit-hole")

	const key = "cache:posts:feed:user=:page=1"
	_, env := app.get("/posts/", cookie)
	if feed := decode[feedData](t, env.Data); len(feed.Posts) != 2 {
		t.Fatalf("first read has %d posts", len(feed.Posts))
	}
	if !mr.Exists(key) {
		t.Fatalf("page 1 not cached, keys = %v", mr.Keys())
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > config.Get().FeedCacheTTL {
		t.Errorf("cache ttl = %v", ttl)
	}
	cached, err := mr.Get(key)
	if err != nil {
		t.Fatalf("read cached page: %v", err)
	}
	if !strings.Contains(cached, `"author"`) || !strings.Contains(cached, `"username":"alice"`) {
		t.Errorf("cached page lacks the author: %s", cached)
	}

	// a row written behind the service's back stays invisible while the page is cached
	app.seedPosts("bob", 1, time.Now())
	_, env = app.get("/posts/", cookie)
	hit := decode[feedData](t, env.Data)
	if len(hit.Posts) != 2 {
		t.Fatalf("cached read has %d posts, want 2", len(hit.Posts))
	}
	if hit.Posts[0].User == nil || hit.Posts[0].User.Username != "alice" {
		t.Errorf("author lost in cache round trip: %+v", hit.Posts[0].User)
	}

	app.get("/posts/alice/", cookie)
	if !mr.Exists("cache:posts:feed:user=alice:page=1") {
		t.Errorf("user page not cached, keys = %v", mr.Keys())
	}

	rec, env := app.postForm("/posts/create", url.Values{"body": {"fresh"}}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, env.Message)
	}
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, "cache:posts:feed:") {
			t.Errorf("feed key %s survived a new post", k)
		}
	}

	_, env = app.get("/posts/", cookie)
	feed := decode[feedData](t, env.Data)
	if len(feed.Posts) != 4 {
		t.Fatalf("after create: %d posts, want 4", len(feed.Posts))
	}
	if feed.Posts[0].Body != "fresh" {
		t.Errorf("newest post = %q, want the one just created", feed.Posts[0].Body)
	}
}

func TestLogoutRevokesThroughRedis(t *testing.T) {
	mr, redisOpt := withRedis(t)
	app := setupTestApp(t, redisOpt)
	cookie := app.login("bob", "builder")

	if rec, _ := app.get("/logout", cookie); rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}
	key := "jwt:blacklist:" + cookie.Value
	if !mr.Exists(key) {
		t.Fatalf("revocation not stored in redis, keys = %v", mr.Keys())
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > config.Get().SessionTTL {
		t.Errorf("revocation ttl = %v", ttl)
	}

	_, env := app.get("/session", cookie)
	if session := decode[sessionData](t, env.Data); session.LoggedIn {
		t.Error("revoked session still logged in")
	}
	if rec, _ := app.get("/posts/", cookie); rec.Code != http.StatusUnauthorized {
		t.Errorf("revoked session reached the feed: status %d", rec.Code)
	}
}

package handlers

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"sportconnect/internal/db"
	"sportconnect/internal/middleware"
	"sportconnect/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// openTestDB gives each test its own named in-memory SQLite database so
// the suite runs without a Postgres server.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return gdb
}

// pageStubs stands in for the real multitemplate views; each stub dumps the
// fields the tests assert on.
const pageStubs = `
{{define "auth/login.html"}}{{if .Error}}ERR:{{.Error}}{{end}}{{if .Success}}OK:{{.Success}}{{end}}login{{end}}
{{define "auth/signup.html"}}{{if .Error}}ERR:{{.Error}}{{end}}signup{{end}}
{{define "feed.html"}}{{range .Notices}}[{{.Kind}}] {{.Message}} {{end}}{{range .Posts}}{{.User.Name}}:{{.Content}}(likes={{.LikeCount}});{{end}}{{end}}
{{define "events.html"}}{{range .Notices}}[{{.Kind}}] {{.Message}} {{end}}{{range .Events}}{{.Title}}@{{.Date}}(going={{.AttendeeCount}});{{end}}{{end}}
{{define "communities.html"}}{{range .Notices}}[{{.Kind}}] {{.Message}} {{end}}{{range .Communities}}{{.Name}}(members={{.MemberCount}});{{end}}{{end}}
{{define "messages.html"}}{{range .Notices}}[{{.Kind}}] {{.Message}} {{end}}{{range .Users}}{{.Name}};{{end}}{{end}}
{{define "chat.html"}}{{range .Messages}}{{.Sender.Name}}:{{.Content}};{{end}}{{end}}
{{define "profile.html"}}{{range .Notices}}[{{.Kind}}] {{.Message}} {{end}}posts={{.PostCount}} events={{.EventCount}} followers={{.FollowerCount}} following={{.FollowingCount}} is_following={{.IsFollowing}}{{end}}
{{define "error.html"}}error:{{.Error}}{{end}}
`

func newTestRouter(t *testing.T, gdb *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	store := cookie.NewStore([]byte("test_secret"))
	r.Use(sessions.Sessions("sportconnect_session", store))
	r.SetHTMLTemplate(template.Must(template.New("stubs").Parse(pageStubs)))
	r.Use(middleware.LoadUser(gdb))

	uploads, err := services.NewUploadService(t.TempDir())
	if err != nil {
		t.Fatalf("upload service: %v", err)
	}

	authHandler := NewAuthHandler(gdb)
	feedHandler := NewFeedHandler(gdb, uploads)
	eventHandler := NewEventHandler(gdb)
	communityHandler := NewCommunityHandler(gdb)
	messageHandler := NewMessageHandler(gdb)
	profileHandler := NewProfileHandler(gdb, uploads)

	r.GET("/signup", authHandler.ShowSignup)
	r.POST("/signup", authHandler.Signup)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.POST("/like_post/:id", feedHandler.LikePost)

	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/feed", feedHandler.Feed)
		authorized.POST("/feed", feedHandler.CreatePost)
		authorized.GET("/events", eventHandler.List)
		authorized.POST("/events", eventHandler.Create)
		authorized.GET("/join_event/:id", eventHandler.Join)
		authorized.GET("/communities", communityHandler.List)
		authorized.GET("/join_community/:id", communityHandler.Join)
		authorized.GET("/messages", messageHandler.Directory)
		authorized.GET("/chat/:id", messageHandler.Chat)
		authorized.POST("/chat/:id", messageHandler.Send)
		authorized.GET("/profile/:id", profileHandler.Show)
		authorized.POST("/profile_edit/:id", profileHandler.Edit)
		authorized.POST("/follow/:id", profileHandler.Follow)
		authorized.POST("/unfollow/:id", profileHandler.Unfollow)
	}
	return r
}

// client carries the session cookie across requests like a browser would.
type client struct {
	t       *testing.T
	r       *gin.Engine
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, r *gin.Engine) *client {
	return &client{t: t, r: r, cookies: make(map[string]*http.Cookie)}
}

func (cl *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	cl.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	cl.r.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		cl.cookies[c.Name] = c
	}
	return w
}

func (cl *client) get(path string) *httptest.ResponseRecorder {
	return cl.do(http.MethodGet, path, nil)
}

func (cl *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return cl.do(http.MethodPost, path, form)
}

func (cl *client) signup(name, email, password string) *httptest.ResponseRecorder {
	return cl.postForm("/signup", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})
}

func (cl *client) login(email, password string) *httptest.ResponseRecorder {
	return cl.postForm("/login", url.Values{
		"email":    {email},
		"password": {password},
	})
}

// loggedInClient signs up and logs in a fresh user, failing the test if
// either step misbehaves.
func loggedInClient(t *testing.T, r *gin.Engine, name, email string) *client {
	t.Helper()
	cl := newClient(t, r)
	if w := cl.signup(name, email, "pw1"); w.Code != http.StatusOK {
		t.Fatalf("signup %s: status %d", email, w.Code)
	}
	if w := cl.login(email, "pw1"); w.Code != http.StatusFound {
		t.Fatalf("login %s: status %d", email, w.Code)
	}
	return cl
}

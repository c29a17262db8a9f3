package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"sportconnect/internal/models"
)

type likeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

func (cl *client) likePost(id string) likeResponse {
	cl.t.Helper()
	w := cl.postForm("/like_post/"+id, nil)
	if w.Code != http.StatusOK {
		cl.t.Fatalf("like_post/%s: status %d", id, w.Code)
	}
	var resp likeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		cl.t.Fatalf("like_post/%s: bad body %q: %v", id, w.Body.String(), err)
	}
	return resp
}

func TestFeedShowsPostsNewestFirst(t *testing.T) {
	gdb := openTestDB(t)
	r := newTestRouter(t, gdb)

	ann := loggedInClient(t, r, "Ann", "ann@x.com")
	ann.postForm("/feed", url.Values{"content": {"first"}})
	ann.postForm("/feed", url.Values{"content": {"second"}})

	// Push the second post later so the ordering is unambiguous
	gdb.Model(&models.Post{}).Where("content = ?", "second").
		Update("created_at", time.Now().Add(time.Second))

	w := ann.get("/feed")
	if w.Code != http.StatusOK {
		t.Fatalf("feed: status %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Ann:first") || !strings.Contains(body, "Ann:second") {
		t.Fatalf("feed body missing posts: %q", body)
	}
	if strings.Index(body, "second") > strings.Index(body, "first") {
		t.Errorf("feed not newest-first: %q", body)
	}
}

func TestCreatePostRequiresContent(t *testing.T) {
	gdb := openTestDB(t)
	r := newTestRouter(t, gdb)

	ann := loggedInClient(t, r, "Ann", "ann@x.com")
	if w := ann.postForm("/feed", nil); w.Code != http.StatusFound {
		t.Fatalf("empty post: status %d, want redirect", w.Code)
	}

	var count int64
	gdb.Model(&models.Post{}).Count(&count)
	if count != 0 {
		t.Errorf("posts created from empty form = %d", count)
	}
}

func TestLikeToggle(t *testing.T) {
	gdb := openTestDB(t)
	r := newTestRouter(t, gdb)

	ann := loggedInClient(t, r, "Ann", "ann@x.com")
	ann.postForm("/feed", url.Values{"content": {"hello"}})

	var post models.Post
	if err := gdb.First(&post).Error; err != nil {
		t.Fatalf("post not created: %v", err)
	}

	bob := loggedInClient(t, r, "Bob", "bob@x.com")
	id := "1"

	if resp := bob.likePost(id); !resp.Liked || resp.LikesCount != 1 {
		t.Errorf("first toggle = %+v, want liked=true count=1", resp)
	}
	if resp := bob.likePost(id); resp.Liked || resp.LikesCount != 0 {
		t.Errorf("second toggle = %+v, want liked=false count=0", resp)
	}

	var count int64
	gdb.Model(&models.Like{}).Count(&count)
	if count != 0 {
		t.Errorf("like rows after double toggle = %d, want 0", count)
	}
}

func TestLikeCountsPerUser(t *testing.T) {
	gdb := openTestDB(t)
	r := newTestRouter(t, gdb)

	ann := loggedInClient(t, r, "Ann", "ann@x.com")
	ann.postForm("/feed", url.Values{"content": {"hello"}})

	bob := loggedInClient(t, r, "Bob", "bob@x.com")

	if resp := ann.likePost("1"); !resp.Liked || resp.LikesCount != 1 {
		t.Errorf("ann like = %+v", resp)
	}
	if resp := bob.likePost("1"); !resp.Liked || resp.LikesCount != 2 {
		t.Errorf("bob like = %+v", resp)
	}
	// Bob backing out leaves Ann's like in place
	if resp := bob.likePost("1"); resp.Liked || resp.LikesCount != 1 {
		t.Errorf("bob unlike = %+v", resp)
	}
}

func TestLikeRequiresLogin(t *testing.T) {
	gdb := openTestDB(t)
	r := newTestRouter(t, gdb)

	cl := newClient(t, r)
	if w := cl.postForm("/like_post/1", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous like: status %d, want 401", w.Code)
	}
}

func TestLikeMissingPost(t *testing.T) {
	gdb := openTestDB(t)
	r := newTestRouter(t, gdb)

	ann := loggedInClient(t, r, "Ann", "ann@x.com")
	if w := ann.postForm("/like_post/99", nil); w.Code != http.StatusNotFound {
		t.Errorf("like missing post: status %d, want 404", w.Code)
	}
}

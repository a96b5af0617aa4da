package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LJTian/TrendSpark/internal/fetcher"
	"github.com/LJTian/TrendSpark/internal/storage"
	"github.com/LJTian/TrendSpark/internal/trends"
	"github.com/gin-gonic/gin"
)

type stubStore struct {
	snap  *storage.Snapshot
	saved []fetcher.Topic
	prefs map[string]bool
}

func (s *stubStore) LoadSnapshot(context.Context) (*storage.Snapshot, bool) {
	if s.snap == nil {
		return nil, false
	}
	return s.snap, true
}
func (s *stubStore) SaveSnapshot(_ context.Context, snap *storage.Snapshot) error {
	s.snap = snap
	return nil
}
func (s *stubStore) LoadSaved(context.Context) []fetcher.Topic { return s.saved }
func (s *stubStore) SaveSaved(_ context.Context, saved []fetcher.Topic) error {
	s.saved = saved
	return nil
}
func (s *stubStore) LoadPrefs(context.Context) map[string]bool { return s.prefs }
func (s *stubStore) SavePrefs(_ context.Context, prefs map[string]bool) error {
	s.prefs = prefs
	return nil
}

type stubClient struct{}

func (stubClient) FetchAll(context.Context) (map[string][]fetcher.Topic, error) {
	return map[string][]fetcher.Topic{
		"news": {{ID: "news-1", Title: "某条新闻", Category: "全球新闻", Description: "描述"}},
	}, nil
}
func (stubClient) FetchDetails(context.Context, string) fetcher.Details {
	return fetcher.Details{Narrative: "详细介绍"}
}
func (stubClient) FetchChatReply(context.Context, string) string { return "你好！" }

func newTestRouter(store trends.Storage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := trends.NewManager(stubClient{}, store, 8*time.Hour)
	r := gin.New()
	NewServer(m).RegisterRoutes(r)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubStore{})

	w := doRequest(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
}

func TestListTrendsServesSnapshotAndAllCategories(t *testing.T) {
	store := &stubStore{snap: &storage.Snapshot{
		Timestamp: time.Now().Add(-time.Hour),
		Data: map[string][]fetcher.Topic{
			"news": {{ID: "news-1", Title: "快照新闻", Category: "全球新闻", Description: "描述"}},
		},
	}}
	r := newTestRouter(store)

	w := doRequest(r, http.MethodGet, "/api/v1/trends", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code string `json:"code"`
		Data struct {
			State      string `json:"state"`
			Categories []struct {
				ID      string          `json:"id"`
				Visible bool            `json:"visible"`
				Topics  []fetcher.Topic `json:"topics"`
			} `json:"categories"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "ok" || resp.Data.State != "ready" {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
	// 九个分类都要出现，没数据的分类给空列表
	if len(resp.Data.Categories) != len(fetcher.Categories) {
		t.Fatalf("categories = %d, want %d", len(resp.Data.Categories), len(fetcher.Categories))
	}
	for _, cv := range resp.Data.Categories {
		if cv.ID == "news" {
			if len(cv.Topics) != 1 || cv.Topics[0].Title != "快照新闻" {
				t.Fatalf("news category should serve snapshot data: %+v", cv)
			}
		} else if cv.Topics == nil {
			t.Fatalf("category %s topics should be an empty list, not null", cv.ID)
		}
		if !cv.Visible {
			t.Fatalf("category %s should default to visible", cv.ID)
		}
	}
}

func TestListTrendsRejectsUnknownCategory(t *testing.T) {
	store := &stubStore{snap: &storage.Snapshot{
		Timestamp: time.Now(),
		Data:      map[string][]fetcher.Topic{},
	}}
	r := newTestRouter(store)

	w := doRequest(r, http.MethodGet, "/api/v1/trends?category=nope", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestToggleSavedRoundTrip(t *testing.T) {
	store := &stubStore{}
	r := newTestRouter(store)

	body := `{"id":"news-1","title":"某条新闻","category":"全球新闻","description":"描述"}`
	w := doRequest(r, http.MethodPost, "/api/v1/saved/toggle", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(store.saved) != 1 || store.saved[0].Title != "某条新闻" {
		t.Fatalf("toggle should persist the topic: %+v", store.saved)
	}

	// 同名再发一次 = 取消收藏
	w = doRequest(r, http.MethodPost, "/api/v1/saved/toggle", body)
	if w.Code != http.StatusOK {
		t.Fatalf("second toggle status = %d", w.Code)
	}
	if len(store.saved) != 0 {
		t.Fatalf("second toggle should remove the topic: %+v", store.saved)
	}
}

func TestToggleSavedRequiresTitle(t *testing.T) {
	r := newTestRouter(&stubStore{})

	w := doRequest(r, http.MethodPost, "/api/v1/saved/toggle", `{"id":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestTogglePreferenceUnknownCategory(t *testing.T) {
	r := newTestRouter(&stubStore{})

	w := doRequest(r, http.MethodPost, "/api/v1/preferences/toggle", `{"category":"nope"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestChatRequiresMessage(t *testing.T) {
	r := newTestRouter(&stubStore{})

	w := doRequest(r, http.MethodPost, "/api/v1/chat", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/v1/chat", `{"message":"你好"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "你好！") {
		t.Fatalf("chat response wrong: %d %s", w.Code, w.Body.String())
	}
}

func TestDetailsRequiresTitle(t *testing.T) {
	r := newTestRouter(&stubStore{})

	w := doRequest(r, http.MethodGet, "/api/v1/trends/details", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/api/v1/trends/details?title=某话题", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "详细介绍") {
		t.Fatalf("details response wrong: %d %s", w.Code, w.Body.String())
	}
}

package trends

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/LJTian/TrendSpark/internal/config"
	"github.com/LJTian/TrendSpark/internal/fetcher"
	"github.com/LJTian/TrendSpark/internal/storage"
)

// State 是管理器的展示状态机
type State string

const (
	StateIdle     State = "idle"
	StateFetching State = "fetching"
	StateReady    State = "ready"
	StateError    State = "error"
)

var ErrUnknownCategory = errors.New("trends: unknown category")

// Storage 抽象三个持久化 blob 的读写，测试时注入内存实现
type Storage interface {
	LoadSnapshot(ctx context.Context) (*storage.Snapshot, bool)
	SaveSnapshot(ctx context.Context, snap *storage.Snapshot) error
	LoadSaved(ctx context.Context) []fetcher.Topic
	SaveSaved(ctx context.Context, saved []fetcher.Topic) error
	LoadPrefs(ctx context.Context) map[string]bool
	SavePrefs(ctx context.Context, prefs map[string]bool) error
}

// Client 抽象对生成服务的抓取入口
type Client interface {
	FetchAll(ctx context.Context) (map[string][]fetcher.Topic, error)
	FetchDetails(ctx context.Context, title string) fetcher.Details
	FetchChatReply(ctx context.Context, message string) string
}

// Manager 决定什么时候用缓存、什么时候触发抓取周期，并承载
// 收藏列表与分类偏好。所有字段由 mu 保护。
type Manager struct {
	client    Client
	store     Storage
	staleness time.Duration

	// now 注入以便测试控制时钟
	now func() time.Time

	mu        sync.Mutex
	state     State
	lastErr   error
	data      map[string][]fetcher.Topic
	updatedAt time.Time

	saved       []fetcher.Topic
	savedLoaded bool
	prefs       map[string]bool
	prefsLoaded bool
}

func NewManager(client Client, store Storage, staleness time.Duration) *Manager {
	return &Manager{
		client:    client,
		store:     store,
		staleness: staleness,
		now:       config.Now,
		state:     StateIdle,
	}
}

// Load 返回各分类的话题列表。force 为 false 时优先走缓存：
// 内存数据或持久化快照只要在有效期内就直接返回，不发任何外部请求；
// 缓存缺失、损坏或过期，以及 force 为 true，都会触发一次完整抓取周期。
func (m *Manager) Load(ctx context.Context, force bool) (map[string][]fetcher.Topic, error) {
	if !force {
		m.mu.Lock()
		if m.state == StateReady && m.now().Sub(m.updatedAt) < m.staleness {
			data := m.dataLocked()
			m.mu.Unlock()
			return data, nil
		}
		m.mu.Unlock()

		if snap, ok := m.store.LoadSnapshot(ctx); ok && m.now().Sub(snap.Timestamp) < m.staleness {
			m.mu.Lock()
			if m.state == StateFetching {
				// 有周期在跑：不动状态机，本次请求直接用快照数据响应，
				// 否则会把 fetching 盖成 ready，让防重入保护失效
				m.mu.Unlock()
				return copyData(snap.Data), nil
			}
			m.data = snap.Data
			m.updatedAt = snap.Timestamp
			m.state = StateReady
			m.lastErr = nil
			data := m.dataLocked()
			m.mu.Unlock()
			log.Printf("trends: serving snapshot from %s", snap.Timestamp.Format(time.RFC3339))
			return data, nil
		}
	}

	return m.refresh(ctx)
}

// refresh 执行一次完整抓取周期。开始抓取的状态迁移带防重入保护：
// 已经有周期在跑时直接返回当前数据，不会并发启动第二个周期。
func (m *Manager) refresh(ctx context.Context) (map[string][]fetcher.Topic, error) {
	m.mu.Lock()
	if m.state == StateFetching {
		log.Println("trends: refresh already in flight, skip")
		data := m.dataLocked()
		m.mu.Unlock()
		return data, nil
	}
	prev := m.state
	m.state = StateFetching
	m.mu.Unlock()

	log.Println("trends: start fetch cycle...")
	data, err := m.client.FetchAll(ctx)
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		// 周期失败：进入错误态，已展示的旧数据原样保留
		m.state = StateError
		m.lastErr = err
		log.Printf("trends: fetch cycle failed (was %s): %v", prev, err)
		return m.dataLocked(), err
	}

	m.data = data
	m.updatedAt = now
	m.state = StateReady
	m.lastErr = nil

	// 兜底数据同样是有效的缓存内容，照常落盘
	snap := &storage.Snapshot{Timestamp: now, Data: data}
	if perr := m.store.SaveSnapshot(ctx, snap); perr != nil {
		// redis 在这里只是缓存，不因写失败丢掉刚拿到的数据
		log.Printf("trends: persist snapshot failed: %v", perr)
	}

	log.Printf("trends: fetch cycle done, %d categories", len(data))
	return m.dataLocked(), nil
}

// Stale 供轮询器探测：有效期已过且当前没有周期在跑时为 true
func (m *Manager) Stale() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateFetching {
		return false
	}
	if m.updatedAt.IsZero() {
		return true
	}
	return m.now().Sub(m.updatedAt) >= m.staleness
}

// Overview 是暴露给展示层的当前状态
type Overview struct {
	State     State                      `json:"state"`
	UpdatedAt time.Time                  `json:"updatedAt"`
	Data      map[string][]fetcher.Topic `json:"data"`
	LastError string                     `json:"lastError,omitempty"`
}

func (m *Manager) Overview() Overview {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := Overview{
		State:     m.state,
		UpdatedAt: m.updatedAt,
		Data:      m.dataLocked(),
	}
	if m.lastErr != nil {
		o.LastError = m.lastErr.Error()
	}
	return o
}

// Saved 返回收藏列表，最近收藏的在最前
func (m *Manager) Saved(ctx context.Context) []fetcher.Topic {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureSavedLocked(ctx)
	out := make([]fetcher.Topic, len(m.saved))
	copy(out, m.saved)
	return out
}

// ToggleSaved 以标题为身份做收藏开关：未收藏则插到最前，
// 已收藏（同名）则移除。每次变更立即持久化。
// 返回值第二项表示该话题现在是否处于已收藏状态。
func (m *Manager) ToggleSaved(ctx context.Context, topic fetcher.Topic) ([]fetcher.Topic, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureSavedLocked(ctx)

	nowSaved := true
	removed := false
	for i, t := range m.saved {
		if t.Title == topic.Title {
			m.saved = append(m.saved[:i], m.saved[i+1:]...)
			nowSaved = false
			removed = true
			break
		}
	}
	if !removed {
		m.saved = append([]fetcher.Topic{topic}, m.saved...)
	}

	out := make([]fetcher.Topic, len(m.saved))
	copy(out, m.saved)
	return out, nowSaved, m.store.SaveSaved(ctx, m.saved)
}

// Preferences 返回全部已知分类的可见性，缺省可见。
// 持久化数据里的未知分类 key 在加载时被静默丢弃。
func (m *Manager) Preferences(ctx context.Context) map[string]bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensurePrefsLocked(ctx)
	out := make(map[string]bool, len(m.prefs))
	for k, v := range m.prefs {
		out[k] = v
	}
	return out
}

// TogglePreference 翻转某个分类的可见性并立即持久化
func (m *Manager) TogglePreference(ctx context.Context, categoryID string) (map[string]bool, error) {
	if _, ok := fetcher.CategoryByID(categoryID); !ok {
		return nil, ErrUnknownCategory
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensurePrefsLocked(ctx)
	m.prefs[categoryID] = !m.prefs[categoryID]

	out := make(map[string]bool, len(m.prefs))
	for k, v := range m.prefs {
		out[k] = v
	}
	return out, m.store.SavePrefs(ctx, m.prefs)
}

// OpenDetails 透传到抓取客户端；失败语义（占位文案）由客户端保证
func (m *Manager) OpenDetails(ctx context.Context, title string) fetcher.Details {
	return m.client.FetchDetails(ctx, title)
}

// SendChat 透传单轮对话
func (m *Manager) SendChat(ctx context.Context, message string) string {
	return m.client.FetchChatReply(ctx, message)
}

func (m *Manager) ensureSavedLocked(ctx context.Context) {
	if m.savedLoaded {
		return
	}
	m.saved = m.store.LoadSaved(ctx)
	m.savedLoaded = true
}

func (m *Manager) ensurePrefsLocked(ctx context.Context) {
	if m.prefsLoaded {
		return
	}
	raw := m.store.LoadPrefs(ctx)
	m.prefs = make(map[string]bool, len(fetcher.Categories))
	for _, cat := range fetcher.Categories {
		visible, ok := raw[cat.ID]
		if !ok {
			visible = true
		}
		m.prefs[cat.ID] = visible
	}
	m.prefsLoaded = true
}

// dataLocked 返回当前话题集的浅拷贝；缺失分类由调用方按空列表处理
func (m *Manager) dataLocked() map[string][]fetcher.Topic {
	return copyData(m.data)
}

func copyData(data map[string][]fetcher.Topic) map[string][]fetcher.Topic {
	out := make(map[string][]fetcher.Topic, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

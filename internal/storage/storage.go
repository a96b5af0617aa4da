package storage

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/LJTian/TrendSpark/internal/fetcher"
	"github.com/redis/go-redis/v9"
)

// 三个互相独立的持久化 key，对应缓存快照 / 收藏列表 / 分类偏好。
// 值一律是整体覆盖写入的 JSON blob。
const (
	snapshotKey = "trendspark:cache"
	savedKey    = "trendspark:saved"
	prefsKey    = "trendspark:prefs"
)

// Snapshot 是一次完整抓取周期的产物：时间戳 + 按分类的话题列表。
// 要么整体存在，要么整体缺失，从不做部分更新。
type Snapshot struct {
	Timestamp time.Time                  `json:"timestamp"`
	Data      map[string][]fetcher.Topic `json:"data"`
}

type Store struct {
	Redis *redis.Client
}

func NewStore(redisAddr string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}

	return &Store{Redis: rdb}, nil
}

// LoadSnapshot 读取持久化的快照。key 不存在、读取失败、JSON 损坏
// 都按"缺失"处理，由调用方触发重新抓取。
func (s *Store) LoadSnapshot(ctx context.Context) (*Snapshot, bool) {
	var snap Snapshot
	if !s.loadJSON(ctx, snapshotKey, &snap) {
		return nil, false
	}
	if snap.Timestamp.IsZero() || snap.Data == nil {
		return nil, false
	}
	return &snap, true
}

// SaveSnapshot 整体覆盖写入快照
func (s *Store) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	return s.saveJSON(ctx, snapshotKey, snap)
}

// LoadSaved 读取收藏列表，读不到就当空列表
func (s *Store) LoadSaved(ctx context.Context) []fetcher.Topic {
	var saved []fetcher.Topic
	if !s.loadJSON(ctx, savedKey, &saved) {
		return nil
	}
	return saved
}

func (s *Store) SaveSaved(ctx context.Context, saved []fetcher.Topic) error {
	if saved == nil {
		saved = []fetcher.Topic{}
	}
	return s.saveJSON(ctx, savedKey, saved)
}

// LoadPrefs 读取分类可见性偏好的原始映射；未知 key 的过滤交给上层
func (s *Store) LoadPrefs(ctx context.Context) map[string]bool {
	var prefs map[string]bool
	if !s.loadJSON(ctx, prefsKey, &prefs) {
		return nil
	}
	return prefs
}

func (s *Store) SavePrefs(ctx context.Context, prefs map[string]bool) error {
	return s.saveJSON(ctx, prefsKey, prefs)
}

func (s *Store) loadJSON(ctx context.Context, key string, v any) bool {
	if s.Redis == nil {
		return false
	}
	bs, err := s.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("storage: read %s: %v", key, err)
		}
		return false
	}
	return decodeBlob(key, bs, v)
}

// decodeBlob 解析持久化的 JSON blob；损坏的数据等同缺失，静默丢弃
func decodeBlob(key string, bs []byte, v any) bool {
	if err := json.Unmarshal(bs, v); err != nil {
		log.Printf("storage: discard corrupted %s: %v", key, err)
		return false
	}
	return true
}

func (s *Store) saveJSON(ctx context.Context, key string, v any) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Redis.Set(ctx, key, bs, 0).Err()
}

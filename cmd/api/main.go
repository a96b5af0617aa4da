package main

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/LJTian/TrendSpark/internal/api"
	"github.com/LJTian/TrendSpark/internal/config"
	"github.com/LJTian/TrendSpark/internal/fetcher"
	"github.com/LJTian/TrendSpark/internal/llm"
	"github.com/LJTian/TrendSpark/internal/scheduler"
	"github.com/LJTian/TrendSpark/internal/storage"
	"github.com/LJTian/TrendSpark/internal/trends"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	if cfg.GeminiAPIKey == "" {
		log.Fatal("set GEMINI_API_KEY environment variable")
	}

	store, err := storage.NewStore(cfg.RedisAddr)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}

	gemini, err := llm.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("init gemini client failed: %v", err)
	}

	client := fetcher.NewClient(gemini)
	manager := trends.NewManager(client, store, cfg.Staleness)

	// 后台过期检查：每分钟探测一次，过期则自动触发非强制刷新
	s, err := scheduler.New(cfg.PollSpec, manager)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()
	defer s.Stop()

	// API
	r := gin.Default()
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(basicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	apiServer := api.NewServer(manager)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

// basicAuthMiddleware 为整个站点增加一个简单的 Basic Auth 访问密码。
// 仅当配置了 APP_BASIC_USER / APP_BASIC_PASS 时启用。
// /health 不做认证，便于健康检查。
func basicAuthMiddleware(user, pass string) gin.HandlerFunc {
	const realm = "Restricted"
	uBytes := []byte(user)
	pBytes := []byte(pass)

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		u, p, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(u), uBytes) != 1 ||
			subtle.ConstantTimeCompare([]byte(p), pBytes) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

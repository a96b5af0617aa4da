package main

import (
	"context"
	"log"
	"time"

	"github.com/LJTian/TrendSpark/internal/config"
	"github.com/LJTian/TrendSpark/internal/fetcher"
	"github.com/LJTian/TrendSpark/internal/llm"
	"github.com/LJTian/TrendSpark/internal/storage"
	"github.com/LJTian/TrendSpark/internal/trends"
)

// 一个仅执行一次强制刷新的命令行入口：适合手动触发或外部定时任务
func main() {
	cfg := config.Load()

	if cfg.GeminiAPIKey == "" {
		log.Fatal("set GEMINI_API_KEY environment variable")
	}

	store, err := storage.NewStore(cfg.RedisAddr)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	gemini, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("init gemini client failed: %v", err)
	}

	client := fetcher.NewClient(gemini)
	manager := trends.NewManager(client, store, cfg.Staleness)

	data, err := manager.Load(ctx, true)
	if err != nil {
		log.Fatalf("refresh failed: %v", err)
	}

	total := 0
	for _, topics := range data {
		total += len(topics)
	}
	log.Printf("refresh done: %d categories, %d topics", len(data), total)
}

package fetcher

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/LJTian/TrendSpark/internal/llm"
)

const (
	// 批次之间的固定停顿，用来规避上游限流
	groupPause = 1500 * time.Millisecond

	// 详情页最多展示的引用来源数
	maxCitations = 6
)

// 限流/暂不可用时的退避表：第 n 次重试前等待 retryDelays[n]
var retryDelays = [...]time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second}

// Details 是单个话题的长文介绍与引用来源
type Details struct {
	Narrative string         `json:"narrative"`
	Citations []llm.Citation `json:"citations"`
}

// Client 封装对生成式 AI 服务的所有请求：重试退避、分批限流、
// 协议解析与兜底数据。分类级别的获取永远有结果，不向上抛错。
type Client struct {
	gen llm.Generator

	// sleep 注入以便测试，生产环境就是 time.Sleep
	sleep func(time.Duration)
}

func NewClient(gen llm.Generator) *Client {
	return &Client{
		gen:   gen,
		sleep: time.Sleep,
	}
}

// FetchAll 按四个批次依次拉取全部分类：批次内并发，批次间停顿。
// 单个分类失败只影响自己（落到兜底数据），仅在 context 取消时整体出错。
func (c *Client) FetchAll(ctx context.Context) (map[string][]Topic, error) {
	out := make(map[string][]Topic, len(Categories))
	var mu sync.Mutex

	for gi, group := range Groups {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fetcher: fetch cycle aborted: %w", err)
		}

		var wg sync.WaitGroup
		for _, id := range group {
			cat, ok := CategoryByID(id)
			if !ok {
				continue
			}
			wg.Add(1)
			go func(cat Category) {
				defer wg.Done()
				topics := c.FetchCategory(ctx, cat)
				mu.Lock()
				out[cat.ID] = topics
				mu.Unlock()
			}(cat)
		}
		wg.Wait()

		if gi < len(Groups)-1 {
			c.sleep(groupPause)
		}
	}

	// 取消可能落在最后一个批次中间，那时分类已经静默退到兜底数据。
	// 这里再查一次，保证被取消的周期以失败收场，而不是拿兜底数据当成功
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetcher: fetch cycle aborted: %w", err)
	}

	return out, nil
}

// FetchCategory 拉取单个分类的话题列表。任何阶段失败都返回该分类的
// 兜底数据；解析出 0 条记录同样走兜底，这不算错误。
func (c *Client) FetchCategory(ctx context.Context, cat Category) []Topic {
	res, err := c.generateWithRetry(ctx, llm.Request{Prompt: categoryPrompt(cat)})
	if err != nil {
		log.Printf("fetcher: fetch %s failed, using defaults: %v", cat.ID, err)
		return DefaultTopics(cat.ID)
	}

	topics := ParseTopics(res.Text, cat.ID)
	if len(topics) == 0 {
		log.Printf("fetcher: %s parsed 0 records, using defaults", cat.ID)
		return DefaultTopics(cat.ID)
	}

	log.Printf("fetcher: %s done, parsed %d topics", cat.ID, len(topics))
	return topics
}

// FetchDetails 获取单个话题的长文介绍，开启联网检索以附带引用来源。
// 失败时返回固定的占位文案，不抛错。
func (c *Client) FetchDetails(ctx context.Context, title string) Details {
	res, err := c.generateWithRetry(ctx, llm.Request{
		Prompt:   detailsPrompt(title),
		Grounded: true,
	})
	if err != nil {
		log.Printf("fetcher: fetch details for %q failed: %v", title, err)
		return Details{Narrative: detailsFallback}
	}

	narrative := strings.TrimSpace(res.Text)
	if narrative == "" {
		return Details{Narrative: detailsFallback}
	}

	citations := res.Citations
	if len(citations) > maxCitations {
		citations = citations[:maxCitations]
	}
	return Details{Narrative: narrative, Citations: citations}
}

// FetchChatReply 与助手进行一次单轮对话，失败时返回固定的致歉文案
func (c *Client) FetchChatReply(ctx context.Context, message string) string {
	res, err := c.generateWithRetry(ctx, llm.Request{
		System: chatPersona,
		Prompt: message,
	})
	if err != nil {
		log.Printf("fetcher: chat reply failed: %v", err)
		return chatFallback
	}
	if reply := strings.TrimSpace(res.Text); reply != "" {
		return reply
	}
	return chatFallback
}

// generateWithRetry 是显式循环版的重试：限流/暂不可用错误按退避表
// 最多再试 3 次，其它错误立即放弃
func (c *Client) generateWithRetry(ctx context.Context, req llm.Request) (*llm.Result, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		res, err := c.gen.Generate(ctx, req)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if attempt >= len(retryDelays) || !llm.IsRetryable(err) {
			break
		}
		log.Printf("fetcher: transient upstream error, retry %d/%d in %s: %v",
			attempt+1, len(retryDelays), retryDelays[attempt], err)
		c.sleep(retryDelays[attempt])
	}
	return nil, lastErr
}

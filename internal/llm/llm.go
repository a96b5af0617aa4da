package llm

import "context"

// Generator 抽象生成式 AI 服务：提交一段 prompt，取回文本与可选的检索引用。
// fetcher 只依赖这个接口，测试时可以注入假实现。
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

type Request struct {
	// System 为系统指令，可为空
	System string
	// Prompt 为本次请求的正文
	Prompt string
	// Grounded 为 true 时启用联网检索，响应会附带引用来源
	Grounded bool
}

type Result struct {
	Text      string
	Citations []Citation
}

// Citation 是一条检索引用：标题 + 来源链接
type Citation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

package fetcher

import "fmt"

// 提示词统一用英文写，输出语言在规则里单独约束，
// 这样对不同模型版本的兼容性最好

func categoryPrompt(cat Category) string {
	return fmt.Sprintf(`List up to 10 topics that are trending RIGHT NOW about %s.

STRICT OUTPUT RULES (MANDATORY):
- One record per line, nothing else. No headers, no numbering, no markdown.
- Each record in EXACTLY this format:
  @@title|%s|description|image@@
- "title" is the topic title and "description" is ONE short sentence,
  both in Simplified Chinese.
- "image" is an optional English image-search keyword; leave it empty if
  nothing fits, but keep the trailing delimiter.
- Never use the "|" or "@" characters inside a field.
- Order records from most to least relevant.`, cat.Query, cat.Name)
}

func detailsPrompt(title string) string {
	return fmt.Sprintf(`Write an up-to-date briefing about the trending topic "%s".

Rules:
- Simplified Chinese, 3 to 5 short paragraphs.
- Cover what happened, why it is trending and what to watch next.
- Plain text only, no markdown headers.`, title)
}

const chatPersona = `You are "小潮", the TrendSpark assistant. You chat with
users about trending topics: news, music, gaming, memes and internet
culture. Reply in Simplified Chinese, keep it friendly and concise
(about 120 characters unless the user asks for detail). If you are not
sure about a fact, say so instead of inventing one.`

const (
	detailsFallback = "抱歉，当前无法获取该话题的详细介绍，请稍后重试。"
	chatFallback    = "抱歉，我这边暂时出了点问题，稍后再聊好吗？"
)

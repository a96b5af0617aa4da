package fetcher

import (
	"fmt"
	"regexp"
	"strings"
)

// Topic 是一条趋势话题卡片
type Topic struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	// Image 是可选的配图检索关键词
	Image string `json:"image,omitempty"`
}

// 每个分类最多保留 10 条记录
const maxTopicsPerCategory = 10

// 记录格式：@@标题|分类|描述|配图关键词@@，四个字段用竖线分隔，
// 配图字段可以为空。模型输出不受契约保证，所以不匹配的行一律静默丢弃。
var recordRe = regexp.MustCompile(`@@([^|@\n]+)\|([^|@\n]+)\|([^|@\n]+)\|([^|@\n]*)@@`)

// ParseTopics 从模型的自由文本里解析话题记录。
// 垃圾行直接跳过；同名标题只保留第一条；ID 只在本批次内唯一。
func ParseTopics(text, categoryID string) []Topic {
	matches := recordRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	out := make([]Topic, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))

	for _, m := range matches {
		title := strings.TrimSpace(m[1])
		category := strings.TrimSpace(m[2])
		desc := strings.TrimSpace(m[3])
		image := strings.TrimSpace(m[4])

		if title == "" || desc == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}

		out = append(out, Topic{
			ID:          fmt.Sprintf("%s-%d", categoryID, len(out)+1),
			Title:       title,
			Category:    category,
			Description: desc,
			Image:       image,
		})
		if len(out) == maxTopicsPerCategory {
			break
		}
	}

	return out
}

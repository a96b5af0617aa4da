package fetcher

// Category 描述一个固定的话题分类
type Category struct {
	ID   string // 分类 key，例如 news / hiphop
	Name string // 前端展示名
	// Query 是发给生成服务的英文主题描述
	Query string
}

// Categories 是九个固定分类，展示顺序与此一致
var Categories = []Category{
	{ID: "news", Name: "全球新闻", Query: "breaking world news and major current events"},
	{ID: "tech", Name: "科技", Query: "technology, AI and startup news"},
	{ID: "music", Name: "音乐", Query: "popular music releases, artists and concerts"},
	{ID: "billboard", Name: "公告牌", Query: "Billboard chart hits and notable chart movement"},
	{ID: "hiphop", Name: "嘻哈", Query: "hip-hop and rap culture, releases and beefs"},
	{ID: "memes", Name: "热梗", Query: "viral internet memes"},
	{ID: "gaming", Name: "游戏", Query: "video games, esports and gaming culture"},
	{ID: "landscapes", Name: "风景", Query: "famous or trending scenic landscapes and travel spots"},
	{ID: "wildlife", Name: "野生动物", Query: "remarkable wildlife and nature stories"},
}

// Groups 把九个分类按外部限流要求拆成四个批次：
// 批次内并发请求，批次之间固定停顿
var Groups = [][]string{
	{"news", "tech"},
	{"music", "billboard", "hiphop"},
	{"memes", "gaming"},
	{"landscapes", "wildlife"},
}

// CategoryByID 按 key 查找分类，未知 key 返回 false
func CategoryByID(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

package fetcher

// 各分类的静态兜底数据：线上取不到任何可用记录时展示这些内容，
// 保证页面永远有卡片可看
var defaultTopics = map[string][]Topic{
	"news": {
		{ID: "news-1", Title: "全球气候峰会进入关键谈判", Category: "全球新闻", Description: "各国代表就减排目标展开新一轮磋商。", Image: "climate summit"},
		{ID: "news-2", Title: "国际油价波动引发关注", Category: "全球新闻", Description: "供应链变化带动能源市场连日震荡。", Image: "oil price"},
		{ID: "news-3", Title: "多国央行释放利率信号", Category: "全球新闻", Description: "市场聚焦下一轮货币政策走向。", Image: "central bank"},
	},
	"tech": {
		{ID: "tech-1", Title: "大模型推理成本持续下降", Category: "科技", Description: "新一代芯片与蒸馏技术让 AI 服务更便宜。", Image: "ai chip"},
		{ID: "tech-2", Title: "开源社区迎来新明星项目", Category: "科技", Description: "一款开发者工具一周内收获数万 star。", Image: "open source"},
		{ID: "tech-3", Title: "折叠屏手机进入第二春", Category: "科技", Description: "多家厂商发布更轻更薄的折叠新品。", Image: "foldable phone"},
	},
	"music": {
		{ID: "music-1", Title: "年度巡演票房刷新纪录", Category: "音乐", Description: "头部歌手世界巡演场场售罄。", Image: "concert crowd"},
		{ID: "music-2", Title: "独立音乐人登上主流榜单", Category: "音乐", Description: "短视频带火多首小众作品。", Image: "indie musician"},
		{ID: "music-3", Title: "经典专辑重制引发怀旧潮", Category: "音乐", Description: "老唱片重新发行销量亮眼。", Image: "vinyl record"},
	},
	"billboard": {
		{ID: "billboard-1", Title: "新单曲空降榜单前三", Category: "公告牌", Description: "发行首周流媒体播放量破纪录。", Image: "music chart"},
		{ID: "billboard-2", Title: "说唱歌手蝉联榜首", Category: "公告牌", Description: "连续多周占据冠军位置。", Image: "rapper stage"},
		{ID: "billboard-3", Title: "乐队时隔十年重返前十", Category: "公告牌", Description: "巡演消息带动老歌回榜。", Image: "rock band"},
	},
	"hiphop": {
		{ID: "hiphop-1", Title: "新生代说唱厂牌崛起", Category: "嘻哈", Description: "多位新人签约引发讨论。", Image: "hip hop studio"},
		{ID: "hiphop-2", Title: "地下 Battle 现场出圈", Category: "嘻哈", Description: "一段即兴对决视频全网刷屏。", Image: "rap battle"},
		{ID: "hiphop-3", Title: "经典采样再次流行", Category: "嘻哈", Description: "老歌采样成为制作人新宠。", Image: "turntable"},
	},
	"memes": {
		{ID: "memes-1", Title: "新表情包席卷社交平台", Category: "热梗", Description: "一张截图衍生出上百种二创。", Image: "funny meme"},
		{ID: "memes-2", Title: "宠物视频意外走红", Category: "热梗", Description: "一只猫的反应成为本周最热素材。", Image: "cat meme"},
		{ID: "memes-3", Title: "怀旧梗强势回归", Category: "热梗", Description: "十年前的老梗被重新玩出花样。", Image: "retro internet"},
	},
	"gaming": {
		{ID: "gaming-1", Title: "年度大作公布发售日期", Category: "游戏", Description: "预告片一天播放量破千万。", Image: "game trailer"},
		{ID: "gaming-2", Title: "独立游戏拿下满分评价", Category: "游戏", Description: "小团队作品口碑销量双丰收。", Image: "indie game"},
		{ID: "gaming-3", Title: "电竞联赛总决赛开战", Category: "游戏", Description: "两支老牌强队再度会师决赛。", Image: "esports arena"},
	},
	"landscapes": {
		{ID: "landscapes-1", Title: "极光观测进入最佳窗口", Category: "风景", Description: "太阳活动高峰带来罕见极光。", Image: "aurora borealis"},
		{ID: "landscapes-2", Title: "高原湖泊进入最美季节", Category: "风景", Description: "湖面倒映雪山吸引大批游客。", Image: "alpine lake"},
		{ID: "landscapes-3", Title: "沙漠星空摄影走热", Category: "风景", Description: "摄影爱好者涌向无光害营地。", Image: "desert stars"},
	},
	"wildlife": {
		{ID: "wildlife-1", Title: "候鸟迁徙大军过境", Category: "野生动物", Description: "数十万候鸟飞越湿地保护区。", Image: "bird migration"},
		{ID: "wildlife-2", Title: "濒危物种幼崽首次亮相", Category: "野生动物", Description: "保护区迎来珍稀新生命。", Image: "endangered cub"},
		{ID: "wildlife-3", Title: "深海探测发现新物种", Category: "野生动物", Description: "科考队拍到未知深海生物。", Image: "deep sea creature"},
	},
}

// DefaultTopics 返回某分类的兜底话题列表（副本，调用方可随意修改）
func DefaultTopics(categoryID string) []Topic {
	src := defaultTopics[categoryID]
	out := make([]Topic, len(src))
	copy(out, src)
	return out
}

package consts

const (
	// SessionKey 会话层写入的键前缀，值为 JSON 编码的会话数据
	SessionKey = "app_session:"

	// RecommendationKey 用户推荐缓存，值为 JSON 编码的 pollId 列表
	RecommendationKey = "recs:"

	// PollLiveChannel 投票实时推送的 Pub/Sub 频道前缀
	PollLiveChannel = "poll:live:"

	// PollTrendingKey 定时任务预计算的热门投票贴列表
	PollTrendingKey = "polls:trending"
)

package consts

const (
	// TopicUserInteractions 用户交互事件主题
	TopicUserInteractions = "user_interactions"
	// TopicPollPreferences 投票贴偏好事件主题
	TopicPollPreferences = "poll_preferences"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

const (
	// RecentPollWindowDays 兜底推荐中"最近"的时间窗口
	RecentPollWindowDays = 7
)

package consts

// 文档库表名
const (
	TableUsers    = "Users"
	TablePosts    = "Posts"
	TableComments = "Comments"
	TableLikes    = "Likes"
)

// 二级索引名，需与部署配置一致
const (
	IndexPostIdolName  = "idolName-index"
	IndexCommentPostID = "postId-index"
	IndexLikeUserPost  = "userId-postId-index"
	IndexUserUsername  = "username-index"
)

// WorkflowIdolMultimodal 全部 AI 操作复用的工作流，按 request_type 区分用途
const WorkflowIdolMultimodal = "IDOL_MULTIMODAL"

const (
	RequestTypeReplySuggestion = "REPLY_SUGGESTION"
	RequestTypeReplyProcess    = "REPLY_PROCESS"
)

// 点赞开关动作
const (
	LikeActionLiked   = "liked"
	LikeActionUnliked = "unliked"
)

// 引流事件类型
const (
	EventPostPublished  = "post.published"
	EventPostLiked      = "post.liked"
	EventCommentCreated = "comment.created"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

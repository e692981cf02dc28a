package dto

// LikeResultDTO 点赞开关结果
// Likes 为更新后回读的权威计数，而非本地推算值
type LikeResultDTO struct {
	Action string `json:"action"`
	Likes  int64  `json:"likes"`
}

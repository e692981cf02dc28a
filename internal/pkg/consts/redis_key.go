package consts

const (
	PostFeedKey       = "post:feed"
	TokenBlacklistKey = "token:blacklist:"
)

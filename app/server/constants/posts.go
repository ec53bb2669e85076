package constants

const (
	PostMaxLength      = 1000
	DefaultAuthorTitle = "성도"
)

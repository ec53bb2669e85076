package constants

import "time"

const (
	CacheKeyContentAll     = "sgch:content:all"
	CacheKeyContentGen     = "sgch:content:gen"
	CacheKeyRevokedSession = "sgch:session:revoked:%s"
)

const (
	CacheExpireContentAll = 10 * time.Minute
)

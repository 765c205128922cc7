package util

const (
	StorageNone  = "none"
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const MimeJSON = "application/json"

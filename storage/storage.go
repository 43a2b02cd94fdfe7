package storage

import (
	"io"
	"travelworld/utils"

	"go.uber.org/zap"
)

type StorageAPI interface {
	// Save stores the reader's content at path, which is relative to the public root.
	// Backends that can detect it fail with os.ErrExist rather than overwrite.
	Save(path string, reader io.Reader, mimeType string) (int64, error)
	Exists(path string) bool
	Delete(path string) error
	GetFreeSpace() uint64
	GetBucket() *Bucket
}

var defaultStorage StorageAPI

// Init sets up the default storage from configuration
func Init() {
	bucket := BucketFromConfig()
	if bucket.StorageType == StorageTypeS3 {
		defaultStorage = NewS3Storage(&bucket)
	} else {
		defaultStorage = NewDiskStorage(&bucket)
	}
	utils.Logger.Info("media storage ready",
		zap.Uint8("type", uint8(bucket.StorageType)),
		zap.String("bucket", bucket.Name),
		zap.String("path", bucket.Path),
	)
}

func GetDefaultStorage() StorageAPI {
	if defaultStorage == nil {
		panic("no storage available")
	}
	return defaultStorage
}

// SetDefaultStorage replaces the storage returned by GetDefaultStorage
func SetDefaultStorage(s StorageAPI) {
	defaultStorage = s
}

// PublicURL is used by templates to link stored media
func PublicURL(path string) string {
	if path == "" || defaultStorage == nil {
		return ""
	}
	return defaultStorage.GetBucket().GetPublicURL(path)
}

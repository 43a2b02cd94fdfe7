package storage

import (
	"strings"
	"travelworld/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

// Bucket describes where uploaded media lives
type Bucket struct {
	Name        string // S3 bucket name, unused for disk
	StorageType StorageType
	Path        string // Path on a drive or a prefix in a S3 bucket
	Region      string
	Endpoint    string // S3 compatible services only
	Key         string
	Secret      string
	PublicURL   string // Base URL the stored files are served from
}

// BucketFromConfig returns an S3 bucket if S3_BUCKET is set, the static dir otherwise
func BucketFromConfig() Bucket {
	if config.S3_BUCKET != "" {
		return Bucket{
			Name:        config.S3_BUCKET,
			StorageType: StorageTypeS3,
			Path:        config.S3_PREFIX,
			Region:      config.S3_REGION,
			Endpoint:    config.S3_ENDPOINT,
			Key:         config.S3_KEY,
			Secret:      config.S3_SECRET,
			PublicURL:   config.S3_PUBLIC_URL,
		}
	}
	return Bucket{
		Name:        "static",
		StorageType: StorageTypeFile,
		Path:        config.STATIC_DIR,
		PublicURL:   "/static",
	}
}

func (b *Bucket) CreateSVC() *s3.S3 {
	cfg := aws.NewConfig().WithRegion(b.Region)
	if b.Key != "" {
		cfg = cfg.WithCredentials(credentials.NewStaticCredentials(b.Key, b.Secret, ""))
	}
	if b.Endpoint != "" {
		cfg = cfg.WithEndpoint(b.Endpoint).WithS3ForcePathStyle(true)
	}
	return s3.New(session.Must(session.NewSession(cfg)))
}

// GetRemotePath prepends the bucket prefix (if any) to path
func (b *Bucket) GetRemotePath(path string) string {
	prefix := strings.Trim(b.Path, "/")
	if prefix == "" {
		return path
	}
	return prefix + "/" + path
}

// GetPublicURL returns the URL a stored path is served from
func (b *Bucket) GetPublicURL(path string) string {
	base := strings.TrimSuffix(b.PublicURL, "/")
	if base == "" && b.StorageType == StorageTypeS3 {
		base = "https://" + b.Name + ".s3." + b.Region + ".amazonaws.com"
	}
	if b.StorageType == StorageTypeS3 {
		path = b.GetRemotePath(path)
	}
	return base + "/" + path
}

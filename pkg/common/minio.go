package common

import (
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArchiveOptions points at the S3-compatible bucket receiving run reports.
type ArchiveOptions struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Insecure  bool
}

func (o ArchiveOptions) Enabled() bool {
	return strings.TrimSpace(o.Bucket) != ""
}

func CreateMinIOSession(options ArchiveOptions) (*minio.Client, error) {
	if strings.TrimSpace(options.Endpoint) == "" {
		return nil, fmt.Errorf("%w: report_s3_endpoint is required when report_bucket is set", ErrMissingSetting)
	}

	endpoint := strings.TrimPrefix(strings.TrimPrefix(options.Endpoint, "https://"), "http://")
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(options.AccessKey, options.SecretKey, ""),
		Region: options.Region,
		Secure: !options.Insecure,
	})
	if err != nil {
		return nil, fmt.Errorf("can't create object storage session for %s: %w", endpoint, err)
	}

	return minioClient, nil
}

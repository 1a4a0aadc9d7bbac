package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ObjectUploader is the subset of the minio client used to archive reports.
type ObjectUploader interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Archiver copies written reports to a bucket.
type Archiver struct {
	uploader ObjectUploader
	bucket   string
}

func NewArchiver(uploader ObjectUploader, bucket string) *Archiver {
	return &Archiver{uploader: uploader, bucket: bucket}
}

// ObjectName keys reports by group, then by run time and run id.
func ObjectName(groupID string, at time.Time, runID uuid.UUID) string {
	return fmt.Sprintf("%s/%s-%s.csv", groupID, at.UTC().Format("20060102-150405"), runID)
}

func (a *Archiver) Archive(ctx context.Context, path string, groupID string, at time.Time, runID uuid.UUID) (string, error) {
	objectName := ObjectName(groupID, at, runID)

	_, err := a.uploader.FPutObject(ctx, a.bucket, objectName, path, minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return "", fmt.Errorf("can't upload report %s to bucket %s: %w", path, a.bucket, err)
	}

	return fmt.Sprintf("%s/%s", a.bucket, objectName), nil
}

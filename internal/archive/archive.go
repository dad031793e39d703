package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bowerhall/courier/internal/logger"
)

const mediaBucket = "courier-media"

// Client archives inbound media attachments to object storage.
type Client struct {
	mc *minio.Client
}

// Config holds MinIO connection settings
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

func NewClient(cfg Config) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &Client{mc: mc}, nil
}

// Init creates the media bucket if it doesn't exist
func (c *Client) Init(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, mediaBucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", mediaBucket, err)
	}

	if !exists {
		if err := c.mc.MakeBucket(ctx, mediaBucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", mediaBucket, err)
		}
		logger.Info("bucket created", "bucket", mediaBucket)
	}

	return nil
}

// Save stores one attachment under the conversation's prefix and returns the
// object name.
func (c *Client) Save(ctx context.Context, conversationID string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	name := fmt.Sprintf("%s/%d", conversationID, time.Now().UnixNano())

	_, err := c.mc.PutObject(ctx, mediaBucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", name, err)
	}

	logger.Debug("media archived", "name", name, "size", len(data))
	return name, nil
}

// Healthy checks if MinIO is reachable
func (c *Client) Healthy(ctx context.Context) bool {
	_, err := c.mc.BucketExists(ctx, mediaBucket)
	return err == nil
}

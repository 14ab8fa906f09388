package storage

import (
	"alcyxob/fitness-admin/internal/config"
	"alcyxob/fitness-admin/internal/media"
	"bytes"
	"context"
	"log"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// objectAPI is the part of *s3.Client the host uses.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// s3Host implements ImageHost on an S3-compatible bucket. Objects are keyed
// by public id. A public base URL, typically an image proxy in front of the
// bucket, serves transformations; without one, reads go through presigned
// GET URLs and transformations are ignored.
type s3Host struct {
	client     objectAPI
	presign    func(ctx context.Context, key string, expires time.Duration) (string, error)
	bucketName string
	publicURL  string
}

// NewS3Host creates a new S3 image host instance.
func NewS3Host(cfg config.S3Config) (ImageHost, error) {
	// Custom resolver for S3-compatible endpoints (like MinIO, DigitalOcean Spaces)
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           cfg.Endpoint,
				SigningRegion: cfg.Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(),
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		log.Printf("ERROR: Failed to load AWS SDK config for S3: %v", err)
		return nil, err
	}

	// Path-style addressing is required by most S3-compatible services.
	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	presignClient := s3.NewPresignClient(s3Client)

	log.Printf("INFO: S3 image host initialized for endpoint: %s, bucket: %s", cfg.Endpoint, cfg.BucketName)

	return &s3Host{
		client: s3Client,
		presign: func(ctx context.Context, key string, expires time.Duration) (string, error) {
			req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(cfg.BucketName),
				Key:    aws.String(key),
			}, s3.WithPresignExpires(expires))
			if err != nil {
				return "", err
			}
			return req.URL, nil
		},
		bucketName: cfg.BucketName,
		publicURL:  strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// Upload stores the image under {folder}/{publicID}.
func (h *s3Host) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if len(in.Data) == 0 {
		return nil, ErrEmptyUpload
	}
	publicID := in.PublicID
	if publicID == "" {
		publicID = uuid.NewString()
	}
	if in.Folder != "" {
		publicID = path.Join(in.Folder, publicID)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(h.bucketName),
		Key:           aws.String(publicID),
		Body:          bytes.NewReader(in.Data),
		ContentLength: aws.Int64(int64(len(in.Data))),
	}
	if in.ContentType != "" {
		input.ContentType = aws.String(in.ContentType)
	}
	if len(in.Tags) > 0 {
		input.Tagging = aws.String("tags=" + strings.Join(in.Tags, "+"))
	}

	if _, err := h.client.PutObject(ctx, input); err != nil {
		log.Printf("ERROR: Failed to put object '%s' into bucket '%s': %v", publicID, h.bucketName, err)
		return nil, err
	}

	return &UploadResult{
		URL:      h.URL(publicID, media.Transform{}),
		PublicID: publicID,
		Bytes:    int64(len(in.Data)),
		Format:   strings.TrimPrefix(path.Ext(in.Filename), "."),
	}, nil
}

// Delete removes an object from the S3 bucket.
func (h *s3Host) Delete(ctx context.Context, publicID string) error {
	_, err := h.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.bucketName),
		Key:    aws.String(publicID),
	})
	if err != nil {
		log.Printf("ERROR: Failed to delete object '%s' from bucket '%s': %v", publicID, h.bucketName, err)
		return err
	}

	log.Printf("INFO: Deleted object '%s' from bucket '%s'", publicID, h.bucketName)
	return nil
}

func (h *s3Host) URL(publicID string, t media.Transform) string {
	publicID = strings.TrimPrefix(publicID, "/")
	if h.publicURL != "" {
		return media.DeliveryURL(h.publicURL, "", publicID, t)
	}
	signed, err := h.presign(context.Background(), publicID, DefaultPresignedURLExpiry)
	if err != nil {
		log.Printf("ERROR: Failed to generate presigned GET URL for key '%s': %v", publicID, err)
		return ""
	}
	return signed
}

// Candidates follows the public delivery layout when one is configured. A
// private bucket offers only the presigned original.
func (h *s3Host) Candidates() []media.Candidate {
	if h.publicURL != "" {
		return media.DefaultCandidates(h.publicURL, "")
	}
	return []media.Candidate{{Name: "presigned", URL: func(id string) string {
		return h.URL(id, media.Transform{})
	}}}
}

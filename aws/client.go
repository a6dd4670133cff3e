package aws

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/rs/zerolog/log"
)

// Client archives generated reports in an S3 bucket.
type Client struct {
	bucket   string
	region   string
	uploader *s3manager.Uploader
}

func NewClient(region, bucket string) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	log.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("AWS session created successfully")

	return &Client{
		bucket:   bucket,
		region:   region,
		uploader: s3manager.NewUploader(sess),
	}, nil
}

// ReportKey is the object key a report is stored under.
func ReportKey(accountID, filename string) string {
	return fmt.Sprintf("reports/%s/%s", accountID, filename)
}

func (c *Client) UploadReport(ctx context.Context, accountID, filename string, csvBody []byte) (string, error) {
	key := ReportKey(accountID, filename)

	log.Info().
		Str("bucket", c.bucket).
		Str("key", key).
		Int("content_size", len(csvBody)).
		Msg("Starting S3 upload")

	result, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(csvBody),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", c.bucket).
			Str("region", c.region).
			Str("key", key).
			Msg("S3 upload failed")
		return "", fmt.Errorf("failed to upload report to S3: %w", err)
	}

	log.Info().
		Str("s3_location", result.Location).
		Str("key", key).
		Msg("Report uploaded to S3 successfully")

	return result.Location, nil
}

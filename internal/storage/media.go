package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// Lookbook images are stored as webp at a bounded width, whatever format
// the admin uploads.
const (
	maxWidth    = 1600
	webpQuality = 85
)

type MediaStore struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

type MediaOptions struct {
	Endpoint   string // empty = AWS, otherwise S3-compatible (MinIO etc.)
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	PublicBase string
}

func NewMediaStore(opts MediaOptions) *MediaStore {
	cfg := aws.Config{
		Region: opts.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			opts.AccessKey, opts.SecretKey, "",
		),
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &MediaStore{
		client:     client,
		bucket:     opts.Bucket,
		publicBase: strings.TrimRight(opts.PublicBase, "/"),
	}
}

// UploadImage converts the upload to webp, downscaling to maxWidth when
// wider, and stores it under a fresh key. Returns the public URL.
func (m *MediaStore) UploadImage(
	ctx context.Context,
	prefix string,
	r io.Reader,
) (string, error) {

	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	src = downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := prefix + "/" + uuid.NewString() + ".webp"
	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return m.URLFor(key), nil
}

func (m *MediaStore) Delete(ctx context.Context, key string) error {
	_, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	})
	return err
}

// URLFor builds the public URL for a stored key.
func (m *MediaStore) URLFor(key string) string {
	if m.publicBase != "" {
		return m.publicBase + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", m.bucket, key)
}

// KeyFor is the inverse of URLFor, for deleting by stored URL.
func (m *MediaStore) KeyFor(url string) string {
	if m.publicBase != "" {
		return strings.TrimPrefix(url, m.publicBase+"/")
	}
	return strings.TrimPrefix(url, fmt.Sprintf("https://%s.s3.amazonaws.com/", m.bucket))
}

func downscale(src image.Image) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

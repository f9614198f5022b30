package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	ci "github.com/aws/aws-sdk-go-v2/service/cognitoidentity"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/mapme/internal/client/config"
	"github.com/dmitrijs2005/mapme/internal/client/identity"
	"github.com/dmitrijs2005/mapme/internal/common"
	"github.com/dmitrijs2005/mapme/internal/logging"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newIdentityClient = func(cfg aws.Config, optFns ...func(*ci.Options)) identityAPI {
		return ci.NewFromConfig(cfg, optFns...)
	}

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// ErrUnsupportedType is returned for files that are not images.
var ErrUnsupportedType = errors.New("unsupported content type")

type identityAPI interface {
	GetId(ctx context.Context, in *ci.GetIdInput, optFns ...func(*ci.Options)) (*ci.GetIdOutput, error)
	GetCredentialsForIdentity(ctx context.Context, in *ci.GetCredentialsForIdentityInput, optFns ...func(*ci.Options)) (*ci.GetCredentialsForIdentityOutput, error)
}

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// UploadTarget is a file picked for upload.
type UploadTarget struct {
	Name        string
	ContentType string
	Data        []byte
}

// Settings binds the uploader to one identity pool and bucket.
type Settings struct {
	Region         string
	UserPoolID     string
	IdentityPoolID string
	Bucket         string
}

type Uploader struct {
	ids      identityAPI
	base     aws.Config
	settings Settings
	logger   logging.Logger
}

func NewUploader(ids identityAPI, base aws.Config, settings Settings, logger logging.Logger) *Uploader {
	return &Uploader{
		ids:      ids,
		base:     base,
		settings: settings,
		logger:   logger,
	}
}

// NewUploaderFromConfig builds an Uploader for cfg. The identity pool calls
// are unsigned; S3 is reached with the credentials they return.
func NewUploaderFromConfig(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Uploader, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	settings := Settings{
		Region:         cfg.Region,
		UserPoolID:     cfg.UserPoolID,
		IdentityPoolID: cfg.IdentityPoolID,
		Bucket:         cfg.AvatarsBucket,
	}
	return NewUploader(newIdentityClient(awsCfg), awsCfg, settings, logger), nil
}

// ObjectKey is the key an avatar named name is stored under for subject.
// Only the base name is kept, so uploads of the same name overwrite.
func ObjectKey(subject, name string) string {
	return "avatars/" + subject + "/" + filepath.Base(filepath.ToSlash(name))
}

// ObjectURL is the virtual-hosted-style URL of key in bucket.
func ObjectURL(bucket, region, key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, strings.Join(parts, "/"))
}

// Upload stores file under the session subject's avatar prefix and returns
// its public URL. Any failure after the session check wraps
// common.ErrUploadFailed.
func (u *Uploader) Upload(ctx context.Context, file UploadTarget, session *identity.Session) (string, error) {
	if session == nil || session.IDToken == "" {
		return "", common.ErrUnauthenticated
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(file.Data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %w: %s", common.ErrUploadFailed, ErrUnsupportedType, contentType)
	}

	objects, err := u.objectClient(ctx, session.IDToken)
	if err != nil {
		u.logger.Error(ctx, "credential exchange failed", "err", err)
		return "", fmt.Errorf("%w: %w", common.ErrUploadFailed, err)
	}

	key := ObjectKey(session.Subject(), file.Name)
	_, err = objects.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.settings.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file.Data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.logger.Error(ctx, "put object failed", "key", key, "err", err)
		return "", fmt.Errorf("%w: put %s: %w", common.ErrUploadFailed, key, err)
	}

	u.logger.Info(ctx, "avatar uploaded", "key", key, "bytes", len(file.Data))
	return ObjectURL(u.settings.Bucket, u.settings.Region, key), nil
}

func (u *Uploader) loginKey() string {
	return fmt.Sprintf("cognito-idp.%s.amazonaws.com/%s", u.settings.Region, u.settings.UserPoolID)
}

// objectClient exchanges idToken for temporary credentials and returns an
// S3 client signing with them.
func (u *Uploader) objectClient(ctx context.Context, idToken string) (objectAPI, error) {
	logins := map[string]string{u.loginKey(): idToken}

	id, err := u.ids.GetId(ctx, &ci.GetIdInput{
		IdentityPoolId: aws.String(u.settings.IdentityPoolID),
		Logins:         logins,
	})
	if err != nil {
		return nil, fmt.Errorf("get id: %w", err)
	}

	out, err := u.ids.GetCredentialsForIdentity(ctx, &ci.GetCredentialsForIdentityInput{
		IdentityId: id.IdentityId,
		Logins:     logins,
	})
	if err != nil {
		return nil, fmt.Errorf("get credentials: %w", err)
	}
	if out.Credentials == nil {
		return nil, errors.New("get credentials: empty response")
	}

	c := out.Credentials
	cfg := u.base.Copy()
	cfg.Region = u.settings.Region
	cfg.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
		aws.ToString(c.AccessKeyId),
		aws.ToString(c.SecretKey),
		aws.ToString(c.SessionToken),
	))
	return newS3ClientFromConfig(cfg), nil
}

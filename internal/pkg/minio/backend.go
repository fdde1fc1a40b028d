package minio

import (
	"Vanguard/internal/model"
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// Backend 把 MinIO 客户端适配为媒体后端存储
// 资源元信息保存在 <resourceID>/stream 对象的用户元数据上:
//
//	x-amz-meta-kind   资源类型 video/document/image/audio
//	x-amz-meta-next   序列中的下一个资源ID
type Backend struct{}

func NewBackend() *Backend {
	return &Backend{}
}

// Stat 拉取资源元数据
func (b *Backend) Stat(ctx context.Context, resourceID string) (*model.MediaObjectInfo, error) {
	if Client == nil {
		return nil, errors.New("minio client is not initialized")
	}

	info, err := Client.StatObject(ctx, MainBucket, resourceID+"/"+model.AssetStream, minio.StatObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "stat media object")
	}

	kind := strings.ToLower(info.UserMetadata["Kind"])
	if kind == "" {
		kind = kindFromContentType(info.ContentType)
	}

	return &model.MediaObjectInfo{
		ResourceID:     resourceID,
		Kind:           kind,
		ContentType:    info.ContentType,
		Size:           info.Size,
		NextInSequence: info.UserMetadata["Next"],
	}, nil
}

// PresignedGet 为指定资产类别签发限时URL
func (b *Backend) PresignedGet(ctx context.Context, resourceID, asset string, ttl time.Duration) (string, error) {
	if Client == nil {
		return "", errors.New("minio client is not initialized")
	}

	u, err := Client.PresignedGetObject(ctx, MainBucket, resourceID+"/"+asset, ttl, url.Values{})
	if err != nil {
		return "", errors.Wrap(err, "presign media object")
	}
	return u.String(), nil
}

func kindFromContentType(ct string) string {
	switch {
	case strings.HasPrefix(ct, "video"):
		return model.MediaKindVideo
	case strings.HasPrefix(ct, "image"):
		return model.MediaKindImage
	case strings.HasPrefix(ct, "audio"):
		return model.MediaKindAudio
	default:
		return model.MediaKindDocument
	}
}

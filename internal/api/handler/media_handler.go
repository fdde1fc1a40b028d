package handler

import (
	"Vanguard/internal/api/dto"
	"Vanguard/internal/pkg/consts"
	"Vanguard/internal/pkg/minio"
	"Vanguard/internal/pkg/redis"
	"Vanguard/internal/pkg/response"
	"Vanguard/internal/pkg/util"
	"Vanguard/internal/service"
	log "log/slog"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type MediaHandler struct {
	mediaService service.MediaService
}

func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload 上传媒体文件到暂存桶，并把元信息缓存到 Redis 待清理任务回收
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	isImage := strings.HasPrefix(contentType, consts.MimePrefixImage)
	isVideo := strings.HasPrefix(contentType, consts.MimePrefixVideo)
	isAudio := strings.HasPrefix(contentType, consts.MimePrefixAudio)
	isPDF := contentType == consts.MimePDF
	if !isImage && !isVideo && !isAudio && !isPDF {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	var width, height int
	if isImage {
		w, h, dimErr := util.GetImageDimensions(reader)
		if dimErr == nil {
			width, height = w, h
		} else {
			log.WarnContext(c, "图片尺寸解析失败", "file", file.Filename, "err", dimErr)
		}
	}

	ext := path.Ext(file.Filename)
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, reader, file.Size, contentType, nil)
	if err != nil {
		log.ErrorContext(c, "MinIO 上传失败", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	meta := dto.MediaTempMetadata{
		MimeType:  contentType,
		Width:     width,
		Height:    height,
		Size:      file.Size,
		CreatedAt: time.Now().Unix(),
	}
	metaBytes, _ := json.Marshal(meta)
	_ = redis.HSet(c.Request.Context(), consts.MediaTempKey, fileKey, string(metaBytes))

	res := map[string]interface{}{
		"url":      fileKey,
		"mime":     contentType,
		"width":    width,
		"height":   height,
		"size":     file.Size,
		"original": file.Filename,
	}

	log.InfoContext(c, "媒体上传成功并缓存元数据", "fileKey", fileKey, "type", contentType)
	response.Success(c, res)
}

// Resolve 解析限时签名URL
func (s *MediaHandler) Resolve(c *gin.Context) {
	resourceID := c.Param("resource_id")

	ttlSeconds, _ := strconv.Atoi(c.DefaultQuery("ttl", "0"))

	constraints := &service.ResolveConstraints{
		IPAddress:       c.ClientIP(),
		PreferredRegion: c.Query("region"),
	}

	res, err := s.mediaService.Resolve(c.Request.Context(), resourceID, ttlSeconds, constraints)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

package handler

import (
	"Aidol/internal/api/dto"
	"Aidol/internal/pkg/minio"
	"Aidol/internal/pkg/response"
	"Aidol/internal/service"
	log "log/slog"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// presignExpiry 预签名上传地址的有效期
const presignExpiry = 15 * time.Minute

type MediaHandler struct{}

func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

// Presign 签发直传地址，客户端自行 PUT 到对象存储
func (s *MediaHandler) Presign(c *gin.Context) {
	var req dto.MediaPresignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	ext := path.Ext(req.FileName)
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	uploadURL, err := minio.PresignUpload(c.Request.Context(), objectName, presignExpiry)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO presign failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	response.Success(c, &dto.MediaPresignDTO{
		UploadURL: uploadURL,
		ObjectKey: objectName,
		PublicURL: minio.GetPublicURL(objectName),
	})
}

package dto

// MediaPresignReq 申请上传地址
type MediaPresignReq struct {
	FileName string `json:"file_name" binding:"required" validate:"min=1,max=255"`
}

// MediaPresignDTO 上传地址结果
type MediaPresignDTO struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
	PublicURL string `json:"public_url"`
}

package api

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"entrena/gym-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// imageKitTokenTTL is the lifetime of an issued upload credential.
const imageKitTokenTTL = 600 // seconds

// MediaHandler issues media-upload credentials and presigned object URLs.
type MediaHandler struct {
	imageKitPrivateKey string
	fileStorage        storage.FileStorage
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(imageKitPrivateKey string, fileStorage storage.FileStorage) *MediaHandler {
	return &MediaHandler{
		imageKitPrivateKey: imageKitPrivateKey,
		fileStorage:        fileStorage,
	}
}

// ImageKitAuthResponse is the credential triple the upload widget expects.
type ImageKitAuthResponse struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

// ImageKitAuth issues a short-lived upload credential:
// token = 32 random bytes hex-encoded, expire = unix now + 600 seconds,
// signature = hex(HMAC-SHA1(token+expire, privateKey)).
func (h *MediaHandler) ImageKitAuth(c *gin.Context) {
	if h.imageKitPrivateKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Configuración de ImageKit no disponible"})
		return
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Configuración de ImageKit no disponible"})
		return
	}
	token := hex.EncodeToString(raw)
	expire := time.Now().Unix() + imageKitTokenTTL

	mac := hmac.New(sha1.New, []byte(h.imageKitPrivateKey))
	mac.Write([]byte(token + fmt.Sprintf("%d", expire)))
	signature := hex.EncodeToString(mac.Sum(nil))

	c.JSON(http.StatusOK, ImageKitAuthResponse{
		Token:     token,
		Expire:    expire,
		Signature: signature,
	})
}

// UploadURLRequest asks for a presigned PUT URL for exercise media.
type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// UploadURLResponse carries the presigned URL and the object key the client
// must report back once the upload finishes.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// RequestUploadURL generates a presigned URL for uploading exercise media to
// the object store.
func (h *MediaHandler) RequestUploadURL(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	lower := strings.ToLower(req.ContentType)
	if !strings.HasPrefix(lower, "image/") && !strings.HasPrefix(lower, "video/") {
		abortWithError(c, http.StatusBadRequest, "Content type must be image/* or video/*")
		return
	}

	sess := sessionFromContext(c)
	if sess == nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	ext := ""
	if parts := strings.Split(lower, "/"); len(parts) == 2 {
		ext = parts[1]
	}
	objectKey := path.Join("media", sess.ID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), ext))

	uploadURL, err := h.fileStorage.GeneratePresignedUploadURL(c.Request.Context(), objectKey, req.ContentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		return
	}

	c.JSON(http.StatusOK, UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	})
}

// GetDownloadURL generates a presigned GET URL for a stored media object, so
// clients can render exercise media from a private bucket.
func (h *MediaHandler) GetDownloadURL(c *gin.Context) {
	objectKey := c.Query("key")
	if objectKey == "" {
		abortWithError(c, http.StatusBadRequest, "key query parameter is required")
		return
	}

	downloadURL, err := h.fileStorage.GeneratePresignedDownloadURL(c.Request.Context(), objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"downloadUrl": downloadURL,
		"objectKey":   objectKey,
	})
}

// DeleteMediaRequest names the object to remove, e.g. after an exercise's
// media is replaced.
type DeleteMediaRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// DeleteMedia removes an uploaded object. Object keys are namespaced per
// uploader, and only keys under the caller's own prefix can be deleted.
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	var req DeleteMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sess := sessionFromContext(c)
	if sess == nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	ownPrefix := path.Join("media", sess.ID.Hex()) + "/"
	if !strings.HasPrefix(req.ObjectKey, ownPrefix) {
		abortWithError(c, http.StatusForbidden, "Cannot delete media owned by another user")
		return
	}

	if err := h.fileStorage.DeleteObject(c.Request.Context(), req.ObjectKey); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete media object.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

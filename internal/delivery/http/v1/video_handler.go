package v1

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"video-profile-extractor/internal/delivery/http/response"
	"video-profile-extractor/internal/domain"
	"video-profile-extractor/pkg/apperror"
	"video-profile-extractor/pkg/security"
)

type VideoHandler struct {
	videoUC domain.VideoUsecase
}

func NewVideoHandler(r *gin.RouterGroup, videoUC domain.VideoUsecase) {
	handler := &VideoHandler{videoUC: videoUC}

	r.POST("/videos", handler.UploadVideo)
	r.POST("/technical-test", handler.GenerateTechnicalTest)
}

// UploadVideo godoc
// @Summary      Process an uploaded video
// @Description  Extracts the audio track, transcribes it, and generates a structured profile plus a narrative CV paragraph
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Video file (mp4, mov, webm, mkv, avi)"
// @Success      200  {object}  response.Response{data=domain.VideoProfileResult}
// @Failure      400  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /videos [post]
func (h *VideoHandler) UploadVideo(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("Missing 'file' form field"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.BadRequest("Cannot read uploaded file"))
		return
	}
	defer src.Close()

	// Sniff the head for validation, then stitch it back onto the stream.
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		c.Error(apperror.BadRequest("Cannot read uploaded file"))
		return
	}
	head = head[:n]

	if result := security.ValidateVideoFile(fileHeader.Filename, head); !result.Valid {
		c.Error(apperror.BadRequest("Invalid video upload: " + result.Error))
		return
	}

	body := io.MultiReader(bytes.NewReader(head), src)
	result, err := h.videoUC.ProcessVideo(c.Request.Context(), body, fileHeader.Filename)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Video processed", result)
}

// GenerateTechnicalTest godoc
// @Summary      Generate a technical test
// @Description  Builds a competency evaluation tailored to a previously extracted profile
// @Tags         videos
// @Accept       json
// @Produce      json
// @Param        profile  body  domain.ProfileData  true  "Extracted profile data"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /technical-test [post]
func (h *VideoHandler) GenerateTechnicalTest(c *gin.Context) {
	var profile domain.ProfileData
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.Error(apperror.BadRequest("Invalid profile payload: " + err.Error()))
		return
	}

	test, err := h.videoUC.GenerateTechnicalTest(c.Request.Context(), &profile)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Technical test generated", gin.H{"technical_test": test})
}

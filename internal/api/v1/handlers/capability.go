package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"polycap/internal/api/errors"
	"polycap/internal/api/middleware"
	"polycap/internal/api/v1/dto"
	"polycap/internal/api/v1/services"
)

// CapabilityHandler handles capability execution endpoints
type CapabilityHandler struct {
	service services.CapabilityService
}

// NewCapabilityHandler creates a new capability handler
func NewCapabilityHandler(service services.CapabilityService) *CapabilityHandler {
	return &CapabilityHandler{
		service: service,
	}
}

// Summarize handles POST /api/v1/summarize
// Condenses a text into a bounded summary
//
// @Summary Summarize a text
// @Description Condenses a text input into a summary bounded by max_length or a length class, falling back through the configured engine chain on failure
// @Tags capabilities
// @Accept json
// @Produce json
// @Param request body dto.SummarizeRequest true "Summarize request"
// @Success 200 {object} dto.TextResultResponse "Summary with status and engine provenance"
// @Failure 400 {object} errors.APIError "Bad request - invalid input data"
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /summarize [post]
func (h *CapabilityHandler) Summarize(c *gin.Context) {
	var req dto.SummarizeRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Summarize(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Translate handles POST /api/v1/translate
// Renders a text in the target language
//
// @Summary Translate a text
// @Description Translates a text input into the target language, auto-detecting the source language when no hint is given
// @Tags capabilities
// @Accept json
// @Produce json
// @Param request body dto.TranslateRequest true "Translate request"
// @Success 200 {object} dto.TextResultResponse "Translation with status and engine provenance"
// @Failure 400 {object} errors.APIError "Bad request - invalid input data"
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /translate [post]
func (h *CapabilityHandler) Translate(c *gin.Context) {
	var req dto.TranslateRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Translate(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Transcribe handles POST /api/v1/transcriptions
// Transcribes raw PCM samples to text
//
// @Summary Transcribe audio samples
// @Description Turns raw PCM samples into text, windowing long audio on detected silence; store=true persists the audio to artifact storage
// @Tags capabilities
// @Accept json
// @Produce json
// @Param request body dto.TranscribeRequest true "Transcription request"
// @Success 200 {object} dto.TextResultResponse "Transcript with status and engine provenance"
// @Failure 400 {object} errors.APIError "Bad request - invalid input data"
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcriptions [post]
func (h *CapabilityHandler) Transcribe(c *gin.Context) {
	var req dto.TranscribeRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Transcribe(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// TranscribeUpload handles POST /api/v1/transcriptions/upload
// Transcribes an uploaded WAV file
//
// @Summary Upload a WAV file for transcription
// @Description Uploads a WAV file and transcribes it; store=true persists the upload to artifact storage
// @Tags capabilities
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "WAV file to transcribe"
// @Param language formData string false "Source language hint (ISO 639-1)"
// @Param store formData bool false "Persist the upload to artifact storage"
// @Success 200 {object} dto.TextResultResponse "Transcript with status and engine provenance"
// @Failure 400 {object} errors.APIError "Bad request - invalid file"
// @Failure 413 {object} errors.APIError "Payload too large"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcriptions/upload [post]
func (h *CapabilityHandler) TranscribeUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("No file uploaded"))
		return
	}
	defer file.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, file); err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Failed to read uploaded file"))
		return
	}

	upload := &services.AudioUpload{
		Data:     buf.Bytes(),
		Filename: header.Filename,
		Language: c.PostForm("language"),
		Store:    c.PostForm("store") == "true",
	}

	response, err := h.service.TranscribeUpload(c.Request.Context(), upload)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Synthesize handles POST /api/v1/speech
// Renders text as speech audio
//
// @Summary Synthesize speech from text
// @Description Renders text as WAV audio; store=true uploads the artifact and returns a presigned URL instead of inline base64 audio
// @Tags capabilities
// @Accept json
// @Produce json
// @Param request body dto.SpeechRequest true "Speech request"
// @Success 200 {object} dto.SpeechResultResponse "Synthesized audio with status and engine provenance"
// @Failure 400 {object} errors.APIError "Bad request - invalid input data"
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /speech [post]
func (h *CapabilityHandler) Synthesize(c *gin.Context) {
	var req dto.SpeechRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Synthesize(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

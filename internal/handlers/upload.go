package handlers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/localnerve/fieldwise/internal/utils"
)

// UploadHandler stores submitted daywise photos on the local filesystem and
// returns public URL paths for the ingestion payload's imageUrls.
type UploadHandler struct {
	Dir string
}

// Upload handles POST /api/upload (multipart form, "files" parts)
// @Summary Upload daywise images
// @Description Store uploaded files and return their public URL paths
// @Tags Upload
// @Accept mpfd
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Forbidden", fiber.StatusForbidden, "upload.auth")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, "No files uploaded", fiber.StatusBadRequest, "upload.validation.input")
	}

	files := form.File["files"]
	if len(files) == 0 {
		return utils.ErrorResponse(c, "No files uploaded", fiber.StatusBadRequest, "upload.validation.input")
	}

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		log.Printf("Error creating upload dir: %v", err)
		return utils.ErrorResponse(c, "Upload failed", fiber.StatusInternalServerError, "upload")
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		filename := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename))
		if err := c.SaveFile(file, filepath.Join(h.Dir, filename)); err != nil {
			log.Printf("Error saving upload: %v", err)
			return utils.ErrorResponse(c, "Upload failed", fiber.StatusInternalServerError, "upload")
		}
		urls = append(urls, "/uploads/"+filename)
	}

	log.Printf("User %d uploaded %d file(s)", userID, len(urls))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Upload successful",
		"urls":    urls,
	})
}

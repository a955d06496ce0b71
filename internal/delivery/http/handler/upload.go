package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

// photoFile opens the "photo" multipart field.
func photoFile(c *gin.Context) (multipart.File, string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes)

	header, err := c.FormFile("photo")
	if err != nil {
		badRequest(c, "photo file is required")
		return nil, "", false
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, "cannot read photo")
		return nil, "", false
	}
	return file, header.Header.Get("Content-Type"), true
}

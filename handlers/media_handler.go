package handlers

import (
	"github.com/gin-gonic/gin"
	"mime/multipart"
	"net/http"
	"storefront/services"
)

// openImages opens every uploaded part; the returned func closes them.
func openImages(headers []*multipart.FileHeader) ([]services.ImageFile, func(), error) {
	files := make([]services.ImageFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		files = append(files, services.ImageFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     f,
		})
	}
	return files, closeAll, nil
}

// UploadImagesHandler stores the "images" parts and returns their URLs in order.
func UploadImagesHandler(c *gin.Context, media *services.MediaService) {
	form, err := c.MultipartForm()
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	files, closeAll, err := openImages(form.File["images"])
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	defer closeAll()

	urls, err := media.StoreImages(c.Request.Context(), files)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"urls": urls})
}

// UploadProfileImageHandler stores the "image" part as the user's profile image.
func UploadProfileImageHandler(c *gin.Context, media *services.MediaService) {
	header, err := c.FormFile("image")
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	files, closeAll, err := openImages([]*multipart.FileHeader{header})
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	defer closeAll()

	user, err := media.StoreSingleImage(c.Request.Context(), c.Param("id"), files[0])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

package httpapi

import (
	"net/http"

	postPort "localinfo/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	pc             PostUseCase
	maxUploadBytes int64
}

func NewPostController(pc PostUseCase, maxUploadBytes int64) *PostController {
	return &PostController{pc: pc, maxUploadBytes: maxUploadBytes}
}

type createPostForm struct {
	UserID     uint   `form:"userId" json:"userId" binding:"required"`
	CategoryID uint   `form:"categoryId" json:"categoryId" binding:"required"`
	Contents   string `form:"contents" json:"contents" binding:"required"`
}

// CreatePost accepts multipart/form-data with photos under "photos", or plain JSON without photos.
func (ctl *PostController) CreatePost(c *gin.Context) {
	limitBody(c, ctl.maxUploadBytes)
	var form createPostForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}
	photos, err := formFiles(c, "photos")
	if err != nil {
		respondBindError(c, err)
		return
	}

	id, err := ctl.pc.CreatePost(c.Request.Context(), postPort.CreateRequest{
		UserID:     form.UserID,
		CategoryID: form.CategoryID,
		Contents:   form.Contents,
		Photos:     photos,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", postPath(id))
	c.JSON(http.StatusCreated, gin.H{"id": id, "_links": Links{
		"self":     {Href: postPath(id)},
		"comments": {Href: postPath(id) + "/comments"},
	}})
}

func (ctl *PostController) FindDetailPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := ctl.pc.FindDetailPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResource(p))
}

func (ctl *PostController) UpdatePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req postPort.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if _, err := ctl.pc.UpdatePost(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "_links": Links{"self": {Href: postPath(id)}}})
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := ctl.pc.DeletePost(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

package httpapi

import (
	"fmt"
	"net/http"

	commentPort "localinfo/internal/ports/comment"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	cc             CommentUseCase
	maxUploadBytes int64
}

func NewCommentController(cc CommentUseCase, maxUploadBytes int64) *CommentController {
	return &CommentController{cc: cc, maxUploadBytes: maxUploadBytes}
}

type saveCommentForm struct {
	UserID   uint   `form:"userId" json:"userId" binding:"required"`
	Contents string `form:"contents" json:"contents" binding:"required"`
	ParentID *uint  `form:"parentId" json:"parentId"`
}

type changeCommentForm struct {
	Contents       string `form:"contents" json:"contents" binding:"required"`
	CommentPhotoID *uint  `form:"commentPhotoId" json:"commentPhotoId"`
}

// Save accepts multipart/form-data with images under "images".
func (ctl *CommentController) Save(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	limitBody(c, ctl.maxUploadBytes)
	var form saveCommentForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}
	images, err := formFiles(c, "images")
	if err != nil {
		respondBindError(c, err)
		return
	}

	res, err := ctl.cc.Save(c.Request.Context(), commentPort.SaveRequest{
		UserID:   form.UserID,
		Contents: form.Contents,
		ParentID: form.ParentID,
		Photos:   images,
	}, postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", commentPath(res.ID))
	c.JSON(http.StatusCreated, newCommentResource(res))
}

func (ctl *CommentController) FindAllByPostID(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	comments, err := ctl.cc.FindAllByPostID(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]commentResource, 0, len(comments))
	for _, cm := range comments {
		items = append(items, newCommentResource(cm))
	}
	c.JSON(http.StatusOK, newCollection("comments", items, fmt.Sprintf("/posts/%d/comments", postID)))
}

func (ctl *CommentController) ChangeComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limitBody(c, ctl.maxUploadBytes)
	var form changeCommentForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}
	images, err := formFiles(c, "images")
	if err != nil {
		respondBindError(c, err)
		return
	}

	res, err := ctl.cc.ChangeComment(c.Request.Context(), commentPort.ChangeRequest{
		CommentID:      id,
		Contents:       form.Contents,
		CommentPhotoID: form.CommentPhotoID,
		Photos:         images,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCommentResource(res))
}

func (ctl *CommentController) DeleteComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctl.cc.DeleteComment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

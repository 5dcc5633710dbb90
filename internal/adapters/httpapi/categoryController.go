package httpapi

import (
	"fmt"
	"net/http"

	categoryPort "localinfo/internal/ports/category"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	cc CategoryUseCase
	pc PostUseCase
}

func NewCategoryController(cc CategoryUseCase, pc PostUseCase) *CategoryController {
	return &CategoryController{cc: cc, pc: pc}
}

func (ctl *CategoryController) FindAll(c *gin.Context) {
	categories, err := ctl.cc.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]categoryResource, 0, len(categories))
	for _, cat := range categories {
		items = append(items, newCategoryResource(cat))
	}
	c.JSON(http.StatusOK, newCollection("categories", items, "/categories"))
}

func (ctl *CategoryController) Create(c *gin.Context) {
	var req categoryPort.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	created, err := ctl.cc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/categories/%d/posts", created.ID))
	c.JSON(http.StatusCreated, newCategoryResource(*created))
}

// FindPosts lists the live posts of one category.
func (ctl *CategoryController) FindPosts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	posts, err := ctl.pc.FindAllByCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]postResource, 0, len(posts))
	for _, p := range posts {
		items = append(items, newPostResource(p))
	}
	c.JSON(http.StatusOK, newCollection("posts", items, fmt.Sprintf("/categories/%d/posts", id)))
}

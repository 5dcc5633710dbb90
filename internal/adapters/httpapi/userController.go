package httpapi

import (
	"net/http"

	userPort "localinfo/internal/ports/user"

	"github.com/gin-gonic/gin"
)

type UserController struct{ uc UserUseCase }

func NewUserController(uc UserUseCase) *UserController { return &UserController{uc: uc} }

func (ctl *UserController) LoginUser(c *gin.Context) {
	var req userPort.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *UserController) RegisterUser(c *gin.Context) {
	var req userPort.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	u, err := ctl.uc.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", userPath(u.ID))
	c.JSON(http.StatusCreated, newUserResource(u))
}

func (ctl *UserController) FindUsers(c *gin.Context) {
	users, err := ctl.uc.FindUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]userResource, 0, len(users))
	for _, u := range users {
		items = append(items, newUserResource(u))
	}
	c.JSON(http.StatusOK, newCollection("users", items, "/users"))
}

func (ctl *UserController) FindUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := ctl.uc.FindUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResource(u))
}

func (ctl *UserController) EditUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req userPort.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	u, err := ctl.uc.EditUser(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResource(u))
}

func (ctl *UserController) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctl.uc.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

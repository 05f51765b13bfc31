package controllers

import (
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/resp"
	"github.com/rajeshhitechvalley/Cfapp-sub001/services"
	"github.com/rajeshhitechvalley/Cfapp-sub001/utils"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Svc *services.AuthService
	Log *logger.Logger
}

func NewAuthController(svc *services.AuthService, log *logger.Logger) *AuthController {
	return &AuthController{Svc: svc, Log: log}
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := a.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, a.Log, "login", err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Svc.Me(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		fail(c, a.Log, "me", err)
		return
	}
	resp.OK(c, user)
}

// POST /admin/users
func (a *AuthController) CreateUser(c *gin.Context) {
	var in services.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.Svc.CreateStaff(c.Request.Context(), in)
	if err != nil {
		fail(c, a.Log, "create_user", err)
		return
	}
	resp.Created(c, user)
}

// GET /admin/users?role=
func (a *AuthController) ListUsers(c *gin.Context) {
	users, err := a.Svc.ListUsers(c.Request.Context(), c.Query("role"))
	if err != nil {
		fail(c, a.Log, "list_users", err)
		return
	}
	resp.OK(c, users)
}

// PATCH /admin/users/:id
func (a *AuthController) UpdateUser(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		badID(c)
		return
	}
	var in services.UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.Svc.UpdateUser(c.Request.Context(), id, in)
	if err != nil {
		fail(c, a.Log, "update_user", err)
		return
	}
	resp.OK(c, user)
}

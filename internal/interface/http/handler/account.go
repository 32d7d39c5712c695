package handler

import (
	"github.com/gin-gonic/gin"

	appaccount "github.com/xiebiao/bookcatalog/internal/application/account"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// AccountHandler 账号HTTP处理器
type AccountHandler struct {
	registerUseCase *appaccount.RegisterUseCase
	loginUseCase    *appaccount.LoginUseCase
	refreshUseCase  *appaccount.RefreshTokenUseCase
	logoutUseCase   *appaccount.LogoutUseCase
}

// NewAccountHandler 创建账号处理器
func NewAccountHandler(
	registerUseCase *appaccount.RegisterUseCase,
	loginUseCase *appaccount.LoginUseCase,
	refreshUseCase *appaccount.RefreshTokenUseCase,
	logoutUseCase *appaccount.LogoutUseCase,
) *AccountHandler {
	return &AccountHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		refreshUseCase:  refreshUseCase,
		logoutUseCase:   logoutUseCase,
	}
}

// Register 注册账号
// @Summary      注册账号
// @Description  邮箱区分大小写；密码8-50位，至少包含一个字母和一个数字
// @Tags         账号
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=dto.AccountResponse} "注册成功"
// @Failure      400 {object} response.Response "参数错误（errors列出每个违反的规则）"
// @Failure      409 {object} response.Response "EMAIL_ALREADY_EXISTS"
// @Router       /api/v1/accounts [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	info, err := h.registerUseCase.Execute(c.Request.Context(), appaccount.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToAccountResponse(info))
}

// Login 登录
// @Summary      登录
// @Description  校验邮箱密码，返回JWT Token对
// @Tags         账号
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.LoginResponse} "登录成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "INCORRECT_CREDENTIALS"
// @Failure      404 {object} response.Response "EMAIL_NOT_FOUND"
// @Router       /api/v1/auth/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appaccount.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LoginResponse{
		Account:      dto.ToAccountResponse(&result.Account),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

// Refresh 刷新Access Token
// @Summary      刷新Token
// @Tags         账号
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshTokenRequest true "Refresh Token"
// @Success      200 {object} response.Response{data=dto.RefreshTokenResponse}
// @Failure      401 {object} response.Response "Token无效或账号已不存在"
// @Router       /api/v1/auth/refresh [post]
func (h *AccountHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.refreshUseCase.Execute(c.Request.Context(), appaccount.RefreshTokenRequest{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.RefreshTokenResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
	})
}

// Logout 登出（当前Access Token加入黑名单）
// @Summary      登出
// @Tags         账号
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/auth/logout [post]
func (h *AccountHandler) Logout(c *gin.Context) {
	acc := middleware.MustGetAccount(c)
	if err := h.logoutUseCase.Execute(c.Request.Context(), acc, middleware.GetAccessToken(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

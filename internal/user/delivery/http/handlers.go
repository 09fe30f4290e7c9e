package http

import (
	"renov-srv/pkg/response"
	"renov-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// @Summary Log in with a platform code
// @Description Exchange a one-time platform login code for a bearer token
// @Tags Users
// @Accept json
// @Produce json
// @Param body body loginReq true "Login request"
// @Success 200 {object} loginResp
// @Failure 401 {object} response.Resp
// @Router /api/v1/users/login [post]
func (h *handler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processLoginRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "user.delivery.http.Login: processLoginRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.Login(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "user.delivery.http.Login: usecase Login failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newLoginResp(o))
}

// @Summary Get own profile
// @Tags Users
// @Produce json
// @Success 200 {object} profileResp
// @Failure 404 {object} response.Resp
// @Router /api/v1/users/profile [get]
func (h *handler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)

	o, err := h.uc.GetProfile(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "user.delivery.http.GetProfile: usecase GetProfile failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newProfileResp(o))
}

// @Summary Update own profile
// @Tags Users
// @Accept json
// @Produce json
// @Param body body updateProfileReq true "Profile fields to change"
// @Success 200 {object} profileResp
// @Failure 404 {object} response.Resp
// @Router /api/v1/users/profile [put]
func (h *handler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processUpdateProfileRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "user.delivery.http.UpdateProfile: processUpdateProfileRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.UpdateProfile(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "user.delivery.http.UpdateProfile: usecase UpdateProfile failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newProfileResp(o))
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/geocoder89/usersvc/internal/app"
	"github.com/geocoder89/usersvc/internal/apperr"
	"github.com/geocoder89/usersvc/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type UsersHandler struct {
	state *app.State
}

func NewUsersHandler(state *app.State) *UsersHandler {
	return &UsersHandler{state: state}
}

// CreateUser stores the name, email and password of the payload. The role is
// always User and the status Active; id and created_at come from the store.
func (h *UsersHandler) CreateUser(ctx *gin.Context) error {
	var req user.User

	if err := ctx.ShouldBindJSON(&req); err != nil {
		return apperr.New(apperr.KindDecode, err)
	}

	u, err := h.state.Users().Create(ctx.Request.Context(), user.NewFromCreateRequest(req))
	if err != nil {
		return err
	}

	ctx.JSON(http.StatusOK, u)
	return nil
}

// GetUserByID answers a missing user through the error adapter like any other failure.
func (h *UsersHandler) GetUserByID(ctx *gin.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	u, err := h.state.Users().GetByID(ctx.Request.Context(), id)
	if err != nil {
		return err
	}

	ctx.JSON(http.StatusOK, u)
	return nil
}

// DeleteUserByID marks the user inactive. Unknown ids and repeated calls succeed.
func (h *UsersHandler) DeleteUserByID(ctx *gin.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	if err := h.state.Users().SoftDelete(ctx.Request.Context(), id); err != nil {
		return err
	}

	ctx.Status(http.StatusOK)
	return nil
}

func pathID(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.New(apperr.KindInvalidID, err)
	}
	return id, nil
}

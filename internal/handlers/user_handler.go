package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medifind/internal/dto"
	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/httpresp"
	ucUser "github.com/BruksfildServices01/medifind/internal/usecase/user"
)

type UserHandler struct {
	register *ucUser.Register
	login    *ucUser.Login
	get      *ucUser.GetUser
	list     *ucUser.ListUsers
	update   *ucUser.UpdateUser
	delete   *ucUser.DeleteUser
}

func NewUserHandler(
	register *ucUser.Register,
	login *ucUser.Login,
	get *ucUser.GetUser,
	list *ucUser.ListUsers,
	update *ucUser.UpdateUser,
	delete *ucUser.DeleteUser,
) *UserHandler {
	return &UserHandler{
		register: register,
		login:    login,
		get:      get,
		list:     list,
		update:   update,
		delete:   delete,
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.register.Execute(c.Request.Context(), ucUser.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, res)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *UserHandler) Profile(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	u, err := h.get.Execute(c.Request.Context(), caller.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, u)
}

func (h *UserHandler) List(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	users, err := h.list.Execute(c.Request.Context(), caller)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	u, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.update.Execute(c.Request.Context(), caller, id, ucUser.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), caller, id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "User deleted successfully")
}

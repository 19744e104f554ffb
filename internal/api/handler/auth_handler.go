package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sociopedia/server/internal/core/domain"
	"github.com/sociopedia/server/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	storage     ports.FileStorage
	exposeHash  bool
}

// NewAuthHandler builds the /auth handlers. When exposeHash is true the
// registration response carries the stored password hash under "password",
// matching what older clients of this API received.
func NewAuthHandler(authService ports.AuthService, storage ports.FileStorage, exposeHash bool) *AuthHandler {
	return &AuthHandler{authService: authService, storage: storage, exposeHash: exposeHash}
}

type registerRequest struct {
	FirstName   string   `json:"firstName" form:"firstName" validate:"max=50"`
	LastName    string   `json:"lastName" form:"lastName" validate:"max=50"`
	Email       string   `json:"email" form:"email" validate:"required,email,max=50"`
	Password    string   `json:"password" form:"password" validate:"required"`
	PicturePath string   `json:"picturePath" form:"picturePath"`
	Friends     []string `json:"friends" form:"friends"`
	Location    string   `json:"location" form:"location"`
	Occupation  string   `json:"occupation" form:"occupation"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type registerResponse struct {
	*domain.User
	Password string `json:"password,omitempty"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json,mpfd
// @Produce      json
// @Param        body     body      registerRequest  false  "Registration details (JSON)"
// @Param        picture  formData  file             false  "Profile picture"
// @Success      201      {object}  registerResponse
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	picturePath, err := savePicture(c, h.storage, req.PicturePath)
	if err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PicturePath: picturePath,
		Friends:     req.Friends,
		Location:    req.Location,
		Occupation:  req.Occupation,
	})
	if err != nil {
		return err
	}

	resp := registerResponse{User: user}
	if h.exposeHash {
		resp.Password = user.PasswordHash
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sociopedia/server/internal/core/ports"
)

// PostHandler serves the feed. All routes require Auth; the author and the
// liking user are always the authenticated identity.
type PostHandler struct {
	service ports.PostService
	storage ports.FileStorage
}

func NewPostHandler(service ports.PostService, storage ports.FileStorage) *PostHandler {
	return &PostHandler{service: service, storage: storage}
}

type createPostRequest struct {
	Description string `json:"description" form:"description" validate:"max=2000"`
	PicturePath string `json:"picturePath" form:"picturePath"`
}

// Create handles POST /posts and returns the refreshed feed.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body     body      createPostRequest  false  "Post (JSON)"
// @Param        picture  formData  file               false  "Attached picture"
// @Success      201      {array}   domain.Post
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createPostRequest
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

	feed, err := h.service.CreatePost(c.Request().Context(), ports.CreatePostInput{
		UserID:      userID,
		Description: req.Description,
		PicturePath: picturePath,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, feed)
}

// Feed handles GET /posts.
//
// @Summary      List all posts, newest first
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Post
// @Failure      403  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) Feed(c echo.Context) error {
	posts, err := h.service.Feed(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// UserPosts handles GET /posts/:userId/posts.
//
// @Summary      List a user's posts, newest first
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "Author id"
// @Success      200     {array}   domain.Post
// @Failure      403     {object}  map[string]string
// @Router       /posts/{userId}/posts [get]
func (h *PostHandler) UserPosts(c echo.Context) error {
	posts, err := h.service.UserPosts(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// ToggleLike handles PATCH /posts/:id/like.
//
// @Summary      Like or unlike a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  domain.Post
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/like [patch]
func (h *PostHandler) ToggleLike(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	post, err := h.service.ToggleLike(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

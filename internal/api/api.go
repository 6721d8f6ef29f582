// Package api wires the HTTP routes to the auth, store, and github
// components.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/devconnect-io/devconnect/internal/auth"
	"github.com/devconnect-io/devconnect/internal/models"
)

// UserStore is the slice of the user repository the handlers need.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
	Insert(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProfileStore is the slice of the profile repository the handlers need.
type ProfileStore interface {
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	FindAll(ctx context.Context) ([]models.Profile, error)
	Insert(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, userID primitive.ObjectID, fields bson.M) (*models.Profile, error)
	SetExperience(ctx context.Context, userID primitive.ObjectID, entries []models.Experience) (*models.Profile, error)
	SetEducation(ctx context.Context, userID primitive.ObjectID, entries []models.Education) (*models.Profile, error)
	Delete(ctx context.Context, userID primitive.ObjectID) error
}

// RepoLister fetches a user's public repositories from the upstream
// service.
type RepoLister interface {
	ListRepos(ctx context.Context, username string) (json.RawMessage, error)
}

type Handler struct {
	auth     *auth.Service
	users    UserStore
	profiles ProfileStore
	github   RepoLister
	log      *zap.Logger
}

func NewHandler(authService *auth.Service, users UserStore, profiles ProfileStore, github RepoLister, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{auth: authService, users: users, profiles: profiles, github: github, log: log}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	apiGroup := router.Group("/api")

	apiGroup.POST("/users", h.handleRegister)

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("", h.handleLogin)
	authGroup.GET("", h.AuthRequired(), h.handleGetAuthedUser)

	profileGroup := apiGroup.Group("/profile")
	profileGroup.GET("", h.handleListProfiles)
	profileGroup.GET("/user/:user_id", h.handleGetProfileByUser)
	profileGroup.GET("/github/:username", h.handleGithubRepos)
	profileGroup.GET("/me", h.AuthRequired(), h.handleGetOwnProfile)
	profileGroup.POST("", h.AuthRequired(), h.handleUpsertProfile)
	profileGroup.DELETE("", h.AuthRequired(), h.handleDeleteAccount)
	profileGroup.PUT("/experience", h.AuthRequired(), h.handleAddExperience)
	profileGroup.DELETE("/experience/:exp_id", h.AuthRequired(), h.handleDeleteExperience)
	profileGroup.PUT("/education", h.AuthRequired(), h.handleAddEducation)
	profileGroup.DELETE("/education/:edu_id", h.AuthRequired(), h.handleDeleteEducation)
}

// userRef is the subset of user fields embedded in profile responses.
type userRef struct {
	ID     primitive.ObjectID `json:"_id"`
	Name   string             `json:"name"`
	Avatar string             `json:"avatar"`
}

// profileView is a profile joined with the owning user's name and
// avatar. The outer User field shadows the embedded user id on encode.
type profileView struct {
	models.Profile
	User userRef `json:"user"`
}

func newProfileView(profile models.Profile, user models.User) profileView {
	return profileView{
		Profile: profile,
		User:    userRef{ID: user.ID, Name: user.Name, Avatar: user.Avatar},
	}
}

type errorItem struct {
	Msg string `json:"msg"`
}

// writeErrors emits the express-validator style envelope the original
// clients expect: a list of {msg} objects.
func writeErrors(c *gin.Context, status int, msgs ...string) {
	items := make([]errorItem, 0, len(msgs))
	for _, msg := range msgs {
		items = append(items, errorItem{Msg: msg})
	}
	c.JSON(status, gin.H{"errors": items})
}

func writeMsg(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"msg": msg})
}

// serverError logs the internal error and answers with a generic body;
// no internal detail reaches the caller.
func (h *Handler) serverError(c *gin.Context, scope string, err error) {
	h.log.Error("request failed", zap.String("scope", scope), zap.String("path", c.FullPath()), zap.Error(err))
	writeMsg(c, http.StatusInternalServerError, "Server Error")
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect-io/devconnect/internal/github"
	"github.com/devconnect-io/devconnect/internal/models"
	"github.com/devconnect-io/devconnect/internal/store"
)

type profileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status" binding:"required"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills" binding:"required"`
	Youtube        string `json:"youtube"`
	Facebook       string `json:"facebook"`
	Twitter        string `json:"twitter"`
	Instagram      string `json:"instagram"`
	Linkedin       string `json:"linkedin"`
}

var profileMessages = map[string]string{
	"Status": "Status is required",
	"Skills": "Skills are required",
}

// handleGetOwnProfile returns the caller's profile joined with the
// owning user's name and avatar.
func (h *Handler) handleGetOwnProfile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := callerID(c)

	profile, err := h.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(c, http.StatusNotFound, "Profile not found")
			return
		}
		h.serverError(c, "profile me", err)
		return
	}

	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		h.serverError(c, "profile me", err)
		return
	}

	c.JSON(http.StatusOK, newProfileView(*profile, *user))
}

// handleUpsertProfile creates the caller's profile or applies a partial
// update built from only the fields present in the request. Social
// links live under the nested social document.
func (h *Handler) handleUpsertProfile(c *gin.Context) {
	var req profileRequest
	if !bindAndValidate(c, &req, profileMessages) {
		return
	}

	ctx := c.Request.Context()
	userID := callerID(c)

	fields := bson.M{
		"status": req.Status,
		"skills": models.SplitSkills(req.Skills),
	}
	setIfPresent(fields, "company", req.Company)
	setIfPresent(fields, "website", req.Website)
	setIfPresent(fields, "location", req.Location)
	setIfPresent(fields, "bio", req.Bio)
	setIfPresent(fields, "githubusername", req.GithubUsername)
	setIfPresent(fields, "social.youtube", req.Youtube)
	setIfPresent(fields, "social.facebook", req.Facebook)
	setIfPresent(fields, "social.twitter", req.Twitter)
	setIfPresent(fields, "social.instagram", req.Instagram)
	setIfPresent(fields, "social.linkedin", req.Linkedin)

	updated, err := h.profiles.Update(ctx, userID, fields)
	if err == nil {
		c.JSON(http.StatusOK, updated)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		h.serverError(c, "profile upsert", err)
		return
	}

	profile := newProfileFromRequest(userID, req)
	if err := h.profiles.Insert(ctx, profile); err != nil {
		h.serverError(c, "profile upsert", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// handleListProfiles returns every profile joined with user name and
// avatar. Profiles whose user record has gone missing (a half-finished
// account deletion) are skipped.
func (h *Handler) handleListProfiles(c *gin.Context) {
	ctx := c.Request.Context()

	profiles, err := h.profiles.FindAll(ctx)
	if err != nil {
		h.serverError(c, "profile list", err)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(profiles))
	for _, profile := range profiles {
		ids = append(ids, profile.UserID)
	}

	users := map[primitive.ObjectID]models.User{}
	if len(ids) > 0 {
		users, err = h.users.FindByIDs(ctx, ids)
		if err != nil {
			h.serverError(c, "profile list", err)
			return
		}
	}

	views := make([]profileView, 0, len(profiles))
	for _, profile := range profiles {
		user, ok := users[profile.UserID]
		if !ok {
			continue
		}
		views = append(views, newProfileView(profile, user))
	}

	c.JSON(http.StatusOK, views)
}

// handleGetProfileByUser looks a profile up by user id. A malformed id
// gets the same response as a genuine absence.
func (h *Handler) handleGetProfileByUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		writeMsg(c, http.StatusBadRequest, "Profile not found")
		return
	}

	ctx := c.Request.Context()

	profile, err := h.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(c, http.StatusBadRequest, "Profile not found")
			return
		}
		h.serverError(c, "profile by user", err)
		return
	}

	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(c, http.StatusBadRequest, "Profile not found")
			return
		}
		h.serverError(c, "profile by user", err)
		return
	}

	c.JSON(http.StatusOK, newProfileView(*profile, *user))
}

// handleDeleteAccount removes the caller's profile and then the user
// record. The two deletes are sequential and best-effort; the profile
// goes first so a partial failure never leaves an orphaned profile.
func (h *Handler) handleDeleteAccount(c *gin.Context) {
	ctx := c.Request.Context()
	userID := callerID(c)

	if err := h.profiles.Delete(ctx, userID); err != nil {
		h.serverError(c, "account delete", err)
		return
	}

	if err := h.users.Delete(ctx, userID); err != nil {
		h.serverError(c, "account delete", err)
		return
	}

	writeMsg(c, http.StatusOK, "User deleted and profile data erased.")
}

type experienceRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

var experienceMessages = map[string]string{
	"Title":   "Title is required",
	"Company": "Company is required",
	"From":    "From date is required and has to be past date.",
}

func (h *Handler) handleAddExperience(c *gin.Context) {
	var req experienceRequest
	if !bindAndValidate(c, &req, experienceMessages) {
		return
	}

	from, ok := parseDate(req.From)
	if !ok {
		writeErrors(c, http.StatusBadRequest, "From date is required and has to be past date.")
		return
	}

	entry := models.Experience{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		Current:     req.Current,
		Description: req.Description,
	}
	if to, ok := parseDate(req.To); ok {
		entry.To = to
	}

	ctx := c.Request.Context()
	userID := callerID(c)

	profile, err := h.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(c, http.StatusBadRequest, "Profile not found")
			return
		}
		h.serverError(c, "experience add", err)
		return
	}

	updated, err := h.profiles.SetExperience(ctx, userID, models.PrependExperience(profile.Experience, entry))
	if err != nil {
		h.serverError(c, "experience add", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// handleDeleteExperience removes exactly the entry whose id matches the
// path parameter. No match is a no-op that still returns the profile.
func (h *Handler) handleDeleteExperience(c *gin.Context) {
	ctx := c.Request.Context()
	userID := callerID(c)

	profile, err := h.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(c, http.StatusBadRequest, "Profile not found")
			return
		}
		h.serverError(c, "experience delete", err)
		return
	}

	entries := models.RemoveExperience(profile.Experience, c.Param("exp_id"))

	updated, err := h.profiles.SetExperience(ctx, userID, entries)
	if err != nil {
		h.serverError(c, "experience delete", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

type educationRequest struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required"`
	From         string `json:"from" binding:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

var educationMessages = map[string]string{
	"School":       "School is required",
	"Degree":       "Degree is required",
	"FieldOfStudy": "Field of study is required",
	"From":         "From date is required and needs to be from the past",
}

func (h *Handler) handleAddEducation(c *gin.Context) {
	var req educationRequest
	if !bindAndValidate(c, &req, educationMessages) {
		return
	}

	from, ok := parseDate(req.From)
	if !ok {
		writeErrors(c, http.StatusBadRequest, "From date is required and needs to be from the past")
		return
	}

	entry := models.Education{
		ID:           uuid.NewString(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		Current:      req.Current,
		Description:  req.Description,
	}
	if to, ok := parseDate(req.To); ok {
		if !from.Before(to) {
			writeErrors(c, http.StatusBadRequest, "From date is required and needs to be from the past")
			return
		}
		entry.To = to
	}

	ctx := c.Request.Context()
	userID := callerID(c)

	profile, err := h.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(c, http.StatusBadRequest, "Profile not found")
			return
		}
		h.serverError(c, "education add", err)
		return
	}

	updated, err := h.profiles.SetEducation(ctx, userID, models.PrependEducation(profile.Education, entry))
	if err != nil {
		h.serverError(c, "education add", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) handleDeleteEducation(c *gin.Context) {
	ctx := c.Request.Context()
	userID := callerID(c)

	profile, err := h.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(c, http.StatusBadRequest, "Profile not found")
			return
		}
		h.serverError(c, "education delete", err)
		return
	}

	entries := models.RemoveEducation(profile.Education, c.Param("edu_id"))

	updated, err := h.profiles.SetEducation(ctx, userID, entries)
	if err != nil {
		h.serverError(c, "education delete", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// handleGithubRepos relays the upstream repository listing verbatim.
func (h *Handler) handleGithubRepos(c *gin.Context) {
	body, err := h.github.ListRepos(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, github.ErrNoProfile) {
			writeMsg(c, http.StatusNotFound, "No Github profile")
			return
		}
		h.serverError(c, "github repos", err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func setIfPresent(fields bson.M, key, value string) {
	if value != "" {
		fields[key] = value
	}
}

func newProfileFromRequest(userID primitive.ObjectID, req profileRequest) *models.Profile {
	return &models.Profile{
		UserID:         userID,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         models.SplitSkills(req.Skills),
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social: models.Social{
			Youtube:   req.Youtube,
			Facebook:  req.Facebook,
			Twitter:   req.Twitter,
			Instagram: req.Instagram,
			Linkedin:  req.Linkedin,
		},
		Experience: []models.Experience{},
		Education:  []models.Education{},
		Date:       time.Now().UTC(),
	}
}

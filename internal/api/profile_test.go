package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect-io/devconnect/internal/models"
)

// profileDoc mirrors the profile response fields the tests inspect. It
// leaves the user field out since joined responses carry an object
// there while plain documents carry an id.
type profileDoc struct {
	Status     string              `json:"status"`
	Skills     []string            `json:"skills"`
	Company    string              `json:"company"`
	Location   string              `json:"location"`
	Social     models.Social       `json:"social"`
	Experience []models.Experience `json:"experience"`
	Education  []models.Education  `json:"education"`
}

func decodeProfile(t *testing.T, data []byte) profileDoc {
	t.Helper()
	var profile profileDoc
	require.NoError(t, json.Unmarshal(data, &profile))
	return profile
}

func TestUpsertProfileCreates(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "A", "a@x.com", "secret")

	rec := ts.do(t, http.MethodPost, "/api/profile", token, gin.H{
		"status": "Dev",
		"skills": "go,rust",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	profile := decodeProfile(t, rec.Body.Bytes())
	assert.Equal(t, "Dev", profile.Status)
	assert.Equal(t, []string{"go", "rust"}, profile.Skills)
	assert.Equal(t, 1, ts.profiles.count())
}

func TestUpsertProfileValidation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "A", "a@x.com", "secret")

	rec := ts.do(t, http.MethodPost, "/api/profile", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Status is required")
	assert.Contains(t, rec.Body.String(), "Skills are required")
}

func TestUpsertProfilePartialUpdateLeavesAbsentFields(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "A", "a@x.com", "secret")

	rec := ts.do(t, http.MethodPost, "/api/profile", token, gin.H{
		"status":  "Dev",
		"skills":  "go",
		"company": "Acme",
		"youtube": "https://youtube.com/@acme",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/profile", token, gin.H{
		"status":   "Senior Dev",
		"skills":   "go,rust",
		"location": "Berlin",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	profile := decodeProfile(t, rec.Body.Bytes())
	assert.Equal(t, "Senior Dev", profile.Status)
	assert.Equal(t, []string{"go", "rust"}, profile.Skills)
	assert.Equal(t, "Berlin", profile.Location)
	assert.Equal(t, "Acme", profile.Company)
	assert.Equal(t, "https://youtube.com/@acme", profile.Social.Youtube)
	assert.Equal(t, 1, ts.profiles.count())
}

func TestGetOwnProfileJoinsUser(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "A", "a@x.com", "secret")

	rec := ts.do(t, http.MethodGet, "/api/profile/me", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ts.do(t, http.MethodPost, "/api/profile", token, gin.H{"status": "Dev", "skills": "go"})

	rec = ts.do(t, http.MethodGet, "/api/profile/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string `json:"status"`
		User   struct {
			Name   string `json:"name"`
			Avatar string `json:"avatar"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Dev", resp.Status)
	assert.Equal(t, "A", resp.User.Name)
	assert.NotEmpty(t, resp.User.Avatar)
}

func TestListProfilesJoinsUsers(t *testing.T) {
	ts := newTestServer(t)

	tokenA := ts.register(t, "A", "a@x.com", "secret")
	tokenB := ts.register(t, "B", "b@x.com", "secret")
	ts.do(t, http.MethodPost, "/api/profile", tokenA, gin.H{"status": "Dev", "skills": "go"})
	ts.do(t, http.MethodPost, "/api/profile", tokenB, gin.H{"status": "Ops", "skills": "terraform"})

	rec := ts.do(t, http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		Status string `json:"status"`
		User   struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)

	names := []string{resp[0].User.Name, resp[1].User.Name}
	assert.ElementsMatch(t, []string{"A", "B"}, names)
}

func TestGetProfileByUserID(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "A", "a@x.com", "secret")
	ts.do(t, http.MethodPost, "/api/profile", token, gin.H{"status": "Dev", "skills": "go"})

	userID, err := ts.auth.VerifyToken(token)
	require.NoError(t, err)

	rec := ts.do(t, http.MethodGet, "/api/profile/user/"+userID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Malformed and unknown ids get the same response.
	malformed := ts.do(t, http.MethodGet, "/api/profile/user/not-an-id", "", nil)
	unknown := ts.do(t, http.MethodGet, "/api/profile/user/"+primitive.NewObjectID().Hex(), "", nil)
	assert.Equal(t, http.StatusBadRequest, malformed.Code)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Equal(t, malformed.Body.Bytes(), unknown.Body.Bytes())
}

func TestDeleteAccountRemovesProfileAndUser(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "A", "a@x.com", "secret")
	ts.do(t, http.MethodPost, "/api/profile", token, gin.H{"status": "Dev", "skills": "go"})

	rec := ts.do(t, http.MethodDelete, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User deleted and profile data erased.")

	assert.Equal(t, 0, ts.profiles.count())
	assert.Equal(t, 0, ts.users.count())
}

func TestAddExperienceNewestFirst(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "A", "a@x.com", "secret")
	ts.do(t, http.MethodPost, "/api/profile", token, gin.H{"status": "Dev", "skills": "go"})

	for _, title := range []string{"Junior", "Mid", "Senior"} {
		rec := ts.do(t, http.MethodPut, "/api/profile/experience", token, gin.H{
			"title":   title,
			"company": "Acme",
			"from":    "2019-01-01",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := ts.do(t, http.MethodGet, "/api/profile/me", token, nil)
	profile := decodeProfile(t, rec.Body.Bytes())

	require.Len(t, profile.Experience, 3)
	assert.Equal(t, "Senior", profile.Experience[0].Title)
	assert.Equal(t, "Mid", profile.Experience[1].Title)
	assert.Equal(t, "Junior", profile.Experience[2].Title)
}

func TestAddExperienceValidation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "A", "a@x.com", "secret")
	ts.do(t, http.MethodPost, "/api/profile", token, gin.H{"status": "Dev", "skills": "go"})

	rec := ts.do(t, http.MethodPut, "/api/profile/experience", token, gin.H{"location": "Berlin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Title is required")
	assert.Contains(t, rec.Body.String(), "Company is required")
	assert.Contains(t, rec.Body.String(), "From date is required and has to be past date.")
}

func TestDeleteExperienceRemovesExactlyOne(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "A", "a@x.com", "secret")
	ts.do(t, http.MethodPost, "/api/profile", token, gin.H{"status": "Dev", "skills": "go"})

	for _, title := range []string{"Junior", "Mid", "Senior"} {
		ts.do(t, http.MethodPut, "/api/profile/experience", token, gin.H{
			"title":   title,
			"company": "Acme",
			"from":    "2019-01-01",
		})
	}

	userID, err := ts.auth.VerifyToken(token)
	require.NoError(t, err)
	oid, err := primitive.ObjectIDFromHex(userID)
	require.NoError(t, err)

	stored, err := ts.profiles.FindByUserID(context.Background(), oid)
	require.NoError(t, err)
	target := stored.Experience[1]

	rec := ts.do(t, http.MethodDelete, "/api/profile/experience/"+target.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	profile := decodeProfile(t, rec.Body.Bytes())
	require.Len(t, profile.Experience, 2)
	assert.Equal(t, "Senior", profile.Experience[0].Title)
	assert.Equal(t, "Junior", profile.Experience[1].Title)
}

func TestDeleteExperienceUnknownIDIsNoop(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "A", "a@x.com", "secret")
	ts.do(t, http.MethodPost, "/api/profile", token, gin.H{"status": "Dev", "skills": "go"})
	ts.do(t, http.MethodPut, "/api/profile/experience", token, gin.H{
		"title":   "Dev",
		"company": "Acme",
		"from":    "2019-01-01",
	})

	rec := ts.do(t, http.MethodDelete, "/api/profile/experience/missing-id", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	profile := decodeProfile(t, rec.Body.Bytes())
	assert.Len(t, profile.Experience, 1)
}

func TestAddEducationRejectsFromAfterTo(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "A", "a@x.com", "secret")
	ts.do(t, http.MethodPost, "/api/profile", token, gin.H{"status": "Dev", "skills": "go"})

	rec := ts.do(t, http.MethodPut, "/api/profile/education", token, gin.H{
		"school":       "MIT",
		"degree":       "BSc",
		"fieldofstudy": "CS",
		"from":         "2020-01-01",
		"to":           "2018-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "From date is required and needs to be from the past")
}

func TestDeleteEducationPreservesOrder(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "A", "a@x.com", "secret")
	ts.do(t, http.MethodPost, "/api/profile", token, gin.H{"status": "Dev", "skills": "go"})

	for _, school := range []string{"MIT", "CMU", "ETH"} {
		rec := ts.do(t, http.MethodPut, "/api/profile/education", token, gin.H{
			"school":       school,
			"degree":       "BSc",
			"fieldofstudy": "CS",
			"from":         "2015-09-01",
			"to":           "2019-06-30",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	userID, err := ts.auth.VerifyToken(token)
	require.NoError(t, err)
	oid, err := primitive.ObjectIDFromHex(userID)
	require.NoError(t, err)

	stored, err := ts.profiles.FindByUserID(context.Background(), oid)
	require.NoError(t, err)
	// Entries are newest-first: ETH, CMU, MIT. Remove the middle one.
	target := stored.Education[1]

	rec := ts.do(t, http.MethodDelete, "/api/profile/education/"+target.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	profile := decodeProfile(t, rec.Body.Bytes())
	require.Len(t, profile.Education, 2)
	assert.Equal(t, "ETH", profile.Education[0].School)
	assert.Equal(t, "MIT", profile.Education[1].School)
}

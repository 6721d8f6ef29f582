package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/devconnect-io/devconnect/internal/models"
)

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"go", "rust"}, models.SplitSkills("go,rust"))
	assert.Equal(t, []string{"go", "rust", "sql"}, models.SplitSkills(" go , rust ,sql"))
	assert.Equal(t, []string{"go"}, models.SplitSkills("go,,  ,"))
	assert.Empty(t, models.SplitSkills(""))
}

func TestPrependExperienceOrdersNewestFirst(t *testing.T) {
	var entries []models.Experience
	for _, title := range []string{"first", "second", "third"} {
		entries = models.PrependExperience(entries, models.Experience{ID: title, Title: title})
	}

	assert.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Title)
	assert.Equal(t, "second", entries[1].Title)
	assert.Equal(t, "first", entries[2].Title)
}

func TestRemoveExperienceByID(t *testing.T) {
	entries := []models.Experience{
		{ID: "a", Title: "dev"},
		{ID: "b", Title: "lead"},
		{ID: "c", Title: "cto"},
	}

	filtered := models.RemoveExperience(entries, "b")

	assert.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].ID)
	assert.Equal(t, "c", filtered[1].ID)
}

func TestRemoveExperienceUnknownIDIsNoop(t *testing.T) {
	entries := []models.Experience{{ID: "a"}, {ID: "b"}}

	filtered := models.RemoveExperience(entries, "missing")

	assert.Equal(t, entries, filtered)
}

func TestRemoveEducationPreservesOrder(t *testing.T) {
	now := time.Now().UTC()
	entries := []models.Education{
		{ID: "1", School: "mit", From: now},
		{ID: "2", School: "cmu", From: now},
		{ID: "3", School: "eth", From: now},
		{ID: "4", School: "kth", From: now},
	}

	filtered := models.RemoveEducation(entries, "3")

	assert.Len(t, filtered, 3)
	assert.Equal(t, []string{"1", "2", "4"}, []string{filtered[0].ID, filtered[1].ID, filtered[2].ID})
}

package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile holds the public-facing data attached to exactly one user.
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         primitive.ObjectID `bson:"user" json:"user"`
	Company        string             `bson:"company,omitempty" json:"company,omitempty"`
	Website        string             `bson:"website,omitempty" json:"website,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Status         string             `bson:"status" json:"status"`
	Skills         []string           `bson:"skills" json:"skills"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	GithubUsername string             `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Social         Social             `bson:"social,omitempty" json:"social,omitempty"`
	Experience     []Experience       `bson:"experience" json:"experience"`
	Education      []Education        `bson:"education" json:"education"`
	Date           time.Time          `bson:"date" json:"date"`
}

// Social groups the optional external links under a single nested document.
type Social struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
}

// Experience is a single work-history entry. ID is generated server-side
// so individual entries can be removed later.
type Experience struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Company     string    `bson:"company" json:"company"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	From        time.Time `bson:"from" json:"from"`
	To          time.Time `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool      `bson:"current" json:"current"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
}

// Education is a single education-history entry.
type Education struct {
	ID           string    `bson:"id" json:"id"`
	School       string    `bson:"school" json:"school"`
	Degree       string    `bson:"degree" json:"degree"`
	FieldOfStudy string    `bson:"fieldofstudy" json:"fieldofstudy"`
	From         time.Time `bson:"from" json:"from"`
	To           time.Time `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool      `bson:"current" json:"current"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
}

// SplitSkills turns a comma-separated skills string into an ordered,
// trimmed slice. Empty segments are dropped.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// PrependExperience inserts an entry at the front so the newest entry is
// always listed first.
func PrependExperience(entries []Experience, entry Experience) []Experience {
	return append([]Experience{entry}, entries...)
}

// PrependEducation inserts an entry at the front, newest first.
func PrependEducation(entries []Education, entry Education) []Education {
	return append([]Education{entry}, entries...)
}

// RemoveExperience returns a new slice excluding the entry whose id
// matches. When nothing matches, the result equals the input.
func RemoveExperience(entries []Experience, id string) []Experience {
	filtered := make([]Experience, 0, len(entries))
	for _, entry := range entries {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// RemoveEducation returns a new slice excluding the entry whose id matches.
func RemoveEducation(entries []Education, id string) []Education {
	filtered := make([]Education, 0, len(entries))
	for _, entry := range entries {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

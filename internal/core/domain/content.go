package domain

import "time"

// ContentKind classifies a generated learning artefact.
type ContentKind string

const (
	KindLesson   ContentKind = "lesson"
	KindQuiz     ContentKind = "quiz"
	KindExercise ContentKind = "exercise"
)

// ValidKind reports whether k is one of the supported content kinds.
func ValidKind(k ContentKind) bool {
	switch k {
	case KindLesson, KindQuiz, KindExercise:
		return true
	}
	return false
}

// Content is a generated learning artefact owned by a single user.
type Content struct {
	ID         string      `json:"id"`
	OwnerID    string      `json:"owner_id"`
	Kind       ContentKind `json:"kind"`
	Language   string      `json:"language"`
	Topic      string      `json:"topic"`
	Difficulty string      `json:"difficulty"`
	Title      string      `json:"title"`
	Body       string      `json:"body"`
	CreatedAt  time.Time   `json:"created_at"`
}

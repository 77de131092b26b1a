package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultLessonTitle = "My Lesson"
	// в символах, не байтах
	MinLessonContent = 10
)

type Lesson struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewLesson validates raw setup input and returns an immutable lesson.
func NewLesson(title, content string) (Lesson, error) {
	if strings.TrimSpace(content) == "" {
		return Lesson{}, NewValidation("lesson content is empty: paste a passage or upload a document")
	}
	if utf8.RuneCountInString(content) < MinLessonContent {
		return Lesson{}, NewValidation("lesson content is too short: try a full sentence")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultLessonTitle
	}

	return Lesson{Title: title, Content: content}, nil
}

// Attempt is one recollection: a voice recording or typed text.
type Attempt struct {
	Audio     []byte `json:"-"`
	AudioMIME string `json:"audio_mime,omitempty"`
	Text      string `json:"text,omitempty"`
}

func (a Attempt) HasAudio() bool { return len(a.Audio) > 0 }

func (a Attempt) HasText() bool { return strings.TrimSpace(a.Text) != "" }

// Mode reports which input is used; audio wins when both are present.
func (a Attempt) Mode() string {
	switch {
	case a.HasAudio():
		return "audio"
	case a.HasText():
		return "text"
	}
	return ""
}

func (a Attempt) Validate() error {
	if a.Mode() == "" {
		return NewValidation("attempt is empty: record your voice or type what you remember")
	}
	return nil
}

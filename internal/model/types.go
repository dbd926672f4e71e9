package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Tab is a named, fixed article source.
type Tab struct {
	ID       int    `json:"id"`
	Label    string `json:"label"`
	Endpoint string `json:"endpoint"`
}

// Author is the user block embedded in each article.
type Author struct {
	Name         string `json:"name"`
	Username     string `json:"username"`
	ProfileImage string `json:"profile_image"`
}

// Article is one record of the listing API. Every field is optional on the
// wire; absent or null values decode to the zero value.
type Article struct {
	ID                     int64   `json:"id"`
	Title                  string  `json:"title"`
	Description            string  `json:"description"`
	URL                    string  `json:"url"`
	PublishedAt            string  `json:"published_at"`
	User                   Author  `json:"user"`
	TagList                TagList `json:"tag_list"`
	PositiveReactionsCount int     `json:"positive_reactions_count"`
	CoverImage             string  `json:"cover_image"`
}

// UnmarshalJSON decodes each field on its own. A field whose value has an
// unexpected type is left at its zero value instead of failing the listing.
func (a *Article) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*a = Article{}
	decodeField(fields, "id", &a.ID)
	decodeField(fields, "title", &a.Title)
	decodeField(fields, "description", &a.Description)
	decodeField(fields, "url", &a.URL)
	decodeField(fields, "published_at", &a.PublishedAt)
	decodeField(fields, "user", &a.User)
	decodeField(fields, "tag_list", &a.TagList)
	decodeField(fields, "cover_image", &a.CoverImage)
	a.PositiveReactionsCount = decodeCount(fields["positive_reactions_count"])
	return nil
}

func (u *Author) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*u = Author{}
	decodeField(fields, "name", &u.Name)
	decodeField(fields, "username", &u.Username)
	decodeField(fields, "profile_image", &u.ProfileImage)
	return nil
}

func decodeField[T any](fields map[string]json.RawMessage, name string, dst *T) {
	raw, ok := fields[name]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}

// decodeCount accepts a JSON number or a numeric string. Anything else is 0.
func decodeCount(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// FirstTag returns the first tag, or false when the article has none.
func (a Article) FirstTag() (string, bool) {
	for _, tag := range a.TagList {
		if tag = strings.TrimSpace(tag); tag != "" {
			return tag, true
		}
	}
	return "", false
}

// HasCover reports whether a cover image URL is present.
func (a Article) HasCover() bool {
	return strings.TrimSpace(a.CoverImage) != ""
}

// Published parses PublishedAt. Missing or malformed timestamps return false.
func (a Article) Published() (time.Time, bool) {
	if a.PublishedAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, a.PublishedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TagList accepts both the array form used by listing endpoints and the
// comma-separated string form used by single-article responses.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var joined string
		if err := json.Unmarshal(data, &joined); err != nil {
			return err
		}
		var tags []string
		for _, part := range strings.Split(joined, ",") {
			if part = strings.TrimSpace(part); part != "" {
				tags = append(tags, part)
			}
		}
		*t = tags
		return nil
	}
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}
	*t = tags
	return nil
}

// FormatDay renders a timestamp as a short day label such as "7 Mar".
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2 Jan")
}

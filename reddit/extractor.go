// Package reddit implements insight.Extractor for discussion threads using
// the site's public JSON representation of a post page.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/insight"
)

// MaxComments is the number of top-level comment entries considered.
const MaxComments = 20

// ModeratorAccount is the automated moderation account whose comments are
// never included.
const ModeratorAccount = "AutoModerator"

var _ insight.Extractor = (*Extractor)(nil)

// Extractor loads a post and its top comments.
type Extractor struct {
	fetcher insight.Fetcher
}

// NewExtractor creates a new Extractor. The fetcher must return raw
// response bodies; a browser-based fetcher would wrap the JSON in HTML.
func NewExtractor(fetcher insight.Fetcher) *Extractor {
	return &Extractor{fetcher: fetcher}
}

// Extract fetches the JSON endpoint for the post at rawURL.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*insight.Document, error) {
	endpoint, err := JSONURL(rawURL)
	if err != nil {
		return nil, insight.WrapErrorf(err, insight.EEXTRACT, insight.DiscussionFailedMessage)
	}

	body, err := e.fetcher.Fetch(ctx, endpoint)
	if err != nil {
		return nil, insight.WrapErrorf(err, insight.EEXTRACT, insight.DiscussionFailedMessage)
	}

	thread, err := ParseThread([]byte(body))
	if err != nil {
		return nil, insight.WrapErrorf(err, insight.EEXTRACT, insight.DiscussionFailedMessage)
	}

	return thread.Document(), nil
}

// JSONURL derives the machine-readable endpoint of a post URL by appending
// ".json" to its path. Query and fragment are dropped.
func JSONURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host in %q", rawURL)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/") + ".json"
	u.RawPath = ""
	return u.String(), nil
}

// Post is the submission described by the first listing.
type Post struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Subreddit   string `json:"subreddit"`
	Selftext    string `json:"selftext"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
}

// Comment is an entry of the second listing. "more" stubs decode with an
// empty Body.
type Comment struct {
	Author string `json:"author"`
	Body   string `json:"body"`
	Score  int    `json:"score"`
}

// Thread is a decoded post page.
type Thread struct {
	// Post is nil when the first listing has no children.
	Post     *Post
	Comments []Comment
}

type listing[T any] struct {
	Data struct {
		Children []struct {
			Kind string `json:"kind"`
			Data T      `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// ParseThread decodes the two-element array served by the JSON endpoint.
func ParseThread(data []byte) (*Thread, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, fmt.Errorf("decoding thread: %w", err)
	}
	if len(parts) < 2 {
		return nil, fmt.Errorf("expected post and comment listings, got %d elements", len(parts))
	}

	var posts listing[Post]
	if err := json.Unmarshal(parts[0], &posts); err != nil {
		return nil, fmt.Errorf("decoding post listing: %w", err)
	}
	var comments listing[Comment]
	if err := json.Unmarshal(parts[1], &comments); err != nil {
		return nil, fmt.Errorf("decoding comment listing: %w", err)
	}

	t := &Thread{}
	if len(posts.Data.Children) > 0 {
		t.Post = &posts.Data.Children[0].Data
	}
	for _, c := range comments.Data.Children {
		t.Comments = append(t.Comments, c.Data)
	}
	return t, nil
}

// Document renders the thread. Only the first MaxComments entries are
// considered, in source order; moderator and empty entries are skipped.
func (t *Thread) Document() *insight.Document {
	var sb strings.Builder
	var title string

	if p := t.Post; p != nil {
		title = p.Title
		fmt.Fprintf(&sb, "**Author:** u/%s\n", p.Author)
		fmt.Fprintf(&sb, "**Subreddit:** r/%s\n", p.Subreddit)
		fmt.Fprintf(&sb, "**Score:** %d | **Comments:** %d\n\n", p.Score, p.NumComments)
		if p.Selftext != "" {
			fmt.Fprintf(&sb, "## Post text\n%s\n\n", p.Selftext)
		}
	}

	total := len(t.Comments)
	shown := min(total, MaxComments)
	fmt.Fprintf(&sb, "## Comments (%d of %d)\n\n", shown, total)

	for _, c := range t.Comments[:shown] {
		if c.Body == "" || c.Author == ModeratorAccount {
			continue
		}
		fmt.Fprintf(&sb, "**u/%s** (score: %d):\n%s\n\n---\n\n", c.Author, c.Score, c.Body)
	}

	return &insight.Document{
		Title: title,
		Body:  strings.TrimRight(sb.String(), "\n"),
	}
}

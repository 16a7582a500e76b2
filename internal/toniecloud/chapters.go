package toniecloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// Matcher selects chapters by title.
type Matcher interface {
	Match(title string) bool
	String() string
}

var foldCaser = cases.Fold()

type substringMatcher struct {
	query  string
	folded string
}

// MatchSubstring matches titles containing the query, compared under Unicode
// case folding.
func MatchSubstring(query string) Matcher {
	return substringMatcher{query: query, folded: foldCaser.String(query)}
}

func (m substringMatcher) Match(title string) bool {
	return strings.Contains(foldCaser.String(title), m.folded)
}

func (m substringMatcher) String() string {
	return fmt.Sprintf("substring %q", m.query)
}

type patternMatcher struct {
	re *regexp.Regexp
}

// MatchPattern matches titles against the compiled regular expression.
func MatchPattern(re *regexp.Regexp) Matcher {
	return patternMatcher{re: re}
}

func (m patternMatcher) Match(title string) bool {
	return m.re.MatchString(title)
}

func (m patternMatcher) String() string {
	return fmt.Sprintf("pattern %q", m.re.String())
}

// FindChapters returns the figurine's chapters whose title satisfies the
// matcher, preserving playlist order. An empty result is not an error.
func FindChapters(tonie CreativeTonie, matcher Matcher) []Chapter {
	var matches []Chapter
	for _, chapter := range tonie.Chapters {
		if matcher.Match(chapter.Title) {
			matches = append(matches, chapter)
		}
	}
	return matches
}

// RemoveChapter rewrites the figurine's chapter list without the given
// chapter. The upstream service has no per-chapter delete: the remaining list
// is computed locally (exactly one full-value occurrence removed) and sent
// wholesale via PATCH. There is no optimistic-concurrency guard upstream, so
// a concurrent rewrite of the same figurine can silently lose updates; this
// is an accepted limitation for a single-operator tool.
//
// The chapter must occur exactly once: an absent chapter fails with
// ErrChapterNotFound, duplicates fail before any request is sent.
func (c *Client) RemoveChapter(ctx context.Context, tonie CreativeTonie, chapter Chapter) error {
	remaining := make([]Chapter, 0, len(tonie.Chapters))
	occurrences := 0
	for _, existing := range tonie.Chapters {
		if existing == chapter {
			occurrences++
			continue
		}
		remaining = append(remaining, existing)
	}
	switch {
	case occurrences == 0:
		return fmt.Errorf("%w: %q on %s", ErrChapterNotFound, chapter.Title, tonie.ID)
	case occurrences > 1:
		return fmt.Errorf("chapter %q occurs %d times on %s: refusing ambiguous removal", chapter.Title, occurrences, tonie.ID)
	}

	household, err := c.tonieHousehold(ctx, tonie)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(struct {
		Chapters []Chapter `json:"chapters"`
	}{Chapters: remaining})
	if err != nil {
		return fmt.Errorf("encode chapter list: %w", err)
	}
	endpoint := fmt.Sprintf("%s/households/%s/creativetonies/%s", c.baseURL, household, tonie.ID)
	resp, err := c.doAuthed(ctx, http.MethodPatch, endpoint, "application/json", strings.NewReader(string(payload)))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// RemoveChapters finds the chapters matching the matcher, asks the prompt
// provider for confirmation, and on an explicit yes removes them in order.
// A mid-list failure does not suppress attempts on the remaining chapters
// unless it is unrecoverable (lost authentication, canceled context); all
// failures are joined into the returned error. The removed slice reports the
// chapters that were actually deleted.
func (c *Client) RemoveChapters(ctx context.Context, tonie CreativeTonie, matcher Matcher) ([]Chapter, error) {
	matches := FindChapters(tonie, matcher)
	if len(matches) == 0 {
		return nil, nil
	}
	if c.prompter == nil {
		return nil, ErrNoPrompter
	}
	titles := make([]string, len(matches))
	for i, chapter := range matches {
		titles[i] = chapter.Title
	}
	question := fmt.Sprintf("Remove %d chapter(s) from %q (%s)?", len(matches), tonie.Name, strings.Join(titles, ", "))
	confirmed, err := c.prompter.Confirm(question)
	if err != nil {
		return nil, fmt.Errorf("confirm removal: %w", err)
	}
	if !confirmed {
		return nil, nil
	}

	// Each removal rewrites the figurine, so the working copy must shrink
	// alongside the service state or later PATCHes would resurrect chapters.
	working := tonie
	var removed []Chapter
	var errs []error
	for _, chapter := range matches {
		if err := c.RemoveChapter(ctx, working, chapter); err != nil {
			errs = append(errs, fmt.Errorf("remove %q: %w", chapter.Title, err))
			if errInterrupted(err) {
				break
			}
			continue
		}
		working.Chapters = withoutChapter(working.Chapters, chapter)
		removed = append(removed, chapter)
	}
	return removed, errors.Join(errs...)
}

func withoutChapter(chapters []Chapter, chapter Chapter) []Chapter {
	out := make([]Chapter, 0, len(chapters))
	skipped := false
	for _, existing := range chapters {
		if !skipped && existing == chapter {
			skipped = true
			continue
		}
		out = append(out, existing)
	}
	return out
}

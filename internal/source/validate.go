package source

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

type Verdict int

const (
	Valid Verdict = iota
	TitleMissing
	ChapterMissing
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case TitleMissing:
		return "title missing"
	case ChapterMissing:
		return "chapter missing"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Validation is the outcome of checking a title/chapter pair. For a Valid
// verdict Doc holds the parsed first page of the chapter.
type Validation struct {
	Verdict    Verdict
	ChapterURL string
	Doc        *goquery.Document
}

func (v Validation) OK() bool {
	return v.Verdict == Valid
}

// Validate checks that title exists on the site and that chapter is in
// range for it. A missing title is detected only by the landing page fetch
// producing nothing; a site that answers unknown titles with an ordinary
// markup page falls through to the chapter check and may fail there with
// ErrMissingElement. A cancelled ctx is returned as an error rather than
// read as a missing title.
func (c *Client) Validate(ctx context.Context, title string, chapter int) (Validation, error) {
	slug := Slug(title)
	chapterURL := c.ChapterURL(slug, chapter)
	res := Validation{ChapterURL: chapterURL}

	if landing := c.Fetch(ctx, c.TitleURL(slug)); !landing.Present() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		c.log.Warnf("Sorry, %s does not exist on %s", title, c.SiteName())
		res.Verdict = TitleMissing
		return res, nil
	}

	doc, err := c.Fetch(ctx, chapterURL).Document()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return res, fmt.Errorf("chapter %d of %s: %w", chapter, title, err)
	}

	notFound, err := HasNotFoundMarker(doc, chapterURL)
	if err != nil {
		return res, err
	}
	if notFound {
		c.log.Warnf("Sorry Chapter%d of %s does not exist.", chapter, title)
		res.Verdict = ChapterMissing
		return res, nil
	}

	res.Verdict = Valid
	res.Doc = doc

	return res, nil
}

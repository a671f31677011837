package scraper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/skytraxdata/airline-reviews/models"
)

// Fixed columns present on every review regardless of the per-page
// rating tables.
const (
	colReviewID      = "Review ID"
	colReviewTitle   = "Review Title"
	colReviewMeta    = "Review Meta"
	colReviewContent = "Review Content"
	colOverallRating = "Overall Rating"
)

// FixedColumns returns the columns added to every canonical column set.
func FixedColumns() []string {
	return []string{colReviewID, colReviewTitle, colReviewMeta, colReviewContent, colOverallRating}
}

// ExtractHeaders returns the set of column names observed on one page.
// Each review body table row contributes its label cell. A page with no
// matching rows yields an empty set.
func ExtractHeaders(html string) (map[string]struct{}, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	columns := make(map[string]struct{})
	doc.Find("div.body").Each(func(_ int, body *goquery.Selection) {
		body.Find("tr").Each(func(_ int, row *goquery.Selection) {
			key := strings.TrimSpace(row.Find("td").First().Text())
			if key != "" {
				columns[key] = struct{}{}
			}
		})
	})
	return columns, nil
}

// ExtractReviews parses one page's review sections against the canonical
// column set. Every returned review carries exactly the canonical
// columns as its key set; fields the page does not provide hold
// models.MissingValue. Keys outside the canonical set are ignored.
func ExtractReviews(html string, columns []string) ([]models.Review, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	colSet := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		colSet[col] = struct{}{}
	}

	var reviews []models.Review
	doc.Find("article[itemprop=review]").Each(func(_ int, article *goquery.Selection) {
		review := make(models.Review, len(columns))
		for _, col := range columns {
			review[col] = models.MissingValue
		}
		set := func(col, value string) {
			if _, ok := colSet[col]; ok {
				review[col] = value
			}
		}

		if id, ok := article.Find("div[id]").First().Attr("id"); ok && strings.HasPrefix(id, "anchor") {
			set(colReviewID, strings.TrimPrefix(id, "anchor"))
		}
		if title := article.Find("h2.text_header").First(); title.Length() > 0 {
			set(colReviewTitle, strings.TrimSpace(title.Text()))
		}
		if meta := article.Find("h3.text_sub_header.userStatusWrapper").First(); meta.Length() > 0 {
			set(colReviewMeta, strings.TrimSpace(meta.Text()))
		}
		if content := article.Find("div.text_content").First(); content.Length() > 0 {
			set(colReviewContent, strings.TrimSpace(content.Text()))
		}
		if rating := article.Find("div[itemprop=reviewRating]").First(); rating.Length() > 0 {
			// Rendered as "<value>/10"; keep only the value.
			text := strings.TrimSpace(rating.Text())
			set(colOverallRating, strings.TrimSpace(strings.SplitN(text, "/", 2)[0]))
		}

		article.Find("tr").Each(func(_ int, row *goquery.Selection) {
			key := strings.TrimSpace(row.Find("td").First().Text())
			if key == "" {
				return
			}
			if value := row.Find("td.review-value").First(); value.Length() > 0 {
				set(key, strings.TrimSpace(value.Text()))
				return
			}
			if stars := row.Find("td.stars").First(); stars.Length() > 0 {
				set(key, strconv.Itoa(stars.Find("span.star.fill").Length()))
			}
		})

		reviews = append(reviews, review)
	})
	return reviews, nil
}

// ParseTotalPages reads the review-count indicator carried by page 1 and
// converts it to a page count, rounding up. A missing indicator is an
// error because the fan-out cannot be sized without it.
func ParseTotalPages(html string, perPage int) (int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, fmt.Errorf("parse page: %w", err)
	}

	text := strings.TrimSpace(doc.Find("span[itemprop=reviewCount]").First().Text())
	if text == "" {
		return 0, errors.New("review count indicator not found")
	}

	count, err := strconv.Atoi(strings.Fields(text)[0])
	if err != nil {
		return 0, fmt.Errorf("parse review count %q: %w", text, err)
	}
	if count < 0 {
		return 0, fmt.Errorf("negative review count %d", count)
	}
	return (count + perPage - 1) / perPage, nil
}

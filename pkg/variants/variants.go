// FILE: pkg/variants/variants.go
// PURPOSE: Recover product variant listings embedded in assistant markdown

package variants

import (
	"regexp"
	"strconv"
	"strings"

	"ai-shopping-be/pkg/jsonval"
	"ai-shopping-be/pkg/model"
)

const (
	SegmentText     = "text"
	SegmentProducts = "products"
)

var (
	headerPattern  = regexp.MustCompile(`^\*\*(.+?)\*\*\s*:?\s*$`)
	bulletPattern  = regexp.MustCompile(`^\s*[-*•]\s+`)
	variantPattern = regexp.MustCompile(`^\s*[-*•]\s+(.+?)\s+@\s+(?:₹|Rs\.?)\s*(\d+(?:\.\d{1,2})?)\s*$`)
)

// Segment is either a run of plain text or one recognized product block.
type Segment struct {
	Type     string                `json:"type"`
	Text     string                `json:"text,omitempty"`
	Title    string                `json:"title,omitempty"`
	Products []model.ParsedProduct `json:"products,omitempty"`
}

type Result struct {
	Segments []Segment `json:"segments"`
}

// ParseVariantsFromText splits text into plain-text and product segments,
// in input order. A bold header becomes a product block only when at least
// one bullet under it reads "label @ ₹price"; other bullets in the block are
// dropped. Text with no block is returned as a single text segment.
func ParseVariantsFromText(text string) Result {
	lines := strings.Split(text, "\n")

	var (
		segments []Segment
		pending  []string
	)
	flushText := func() {
		if len(pending) == 0 {
			return
		}
		joined := strings.Join(pending, "\n")
		pending = nil
		if strings.TrimSpace(joined) == "" {
			return
		}
		segments = append(segments, Segment{Type: SegmentText, Text: joined})
	}

	for i := 0; i < len(lines); {
		m := headerPattern.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			pending = append(pending, lines[i])
			i++
			continue
		}

		title := strings.TrimSpace(m[1])
		end := i + 1
		for end < len(lines) && bulletPattern.MatchString(lines[end]) {
			end++
		}
		products := variantProducts(title, lines[i+1:end])
		if len(products) == 0 {
			pending = append(pending, lines[i])
			i++
			continue
		}

		flushText()
		segments = append(segments, Segment{Type: SegmentProducts, Title: title, Products: products})
		i = end
	}
	flushText()

	if len(segments) == 0 || (len(segments) == 1 && segments[0].Type == SegmentText) {
		return Result{Segments: []Segment{{Type: SegmentText, Text: text}}}
	}
	return Result{Segments: segments}
}

func variantProducts(title string, bullets []string) []model.ParsedProduct {
	key := jsonval.Slug(title)
	var out []model.ParsedProduct
	for _, line := range bullets {
		m := variantPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		price, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		out = append(out, model.ParsedProduct{
			ID:         key + "-var-" + strconv.Itoa(len(out)),
			Name:       title,
			Price:      jsonval.Float(price),
			Quantity:   strings.TrimSpace(m[1]),
			Available:  true,
			GroupLabel: title,
			GroupKey:   key,
		})
	}
	return out
}

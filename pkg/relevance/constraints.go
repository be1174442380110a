// FILE: pkg/relevance/constraints.go
// PURPOSE: Extract strict constraints from free-text user queries

package relevance

import (
	"regexp"
	"strconv"
	"strings"

	"ai-shopping-be/pkg/model"
)

// Profile selects which constraint dimensions a vertical extracts.
type Profile struct {
	Cuisines  bool
	Dishes    bool
	Diet      bool
	Spicy     bool
	Budget    bool
	Delivery  bool
	Areas     bool
	Vibes     bool
	PartySize bool
	TimeHints bool
}

var (
	// FoodProfile covers food delivery searches.
	FoodProfile = Profile{Cuisines: true, Dishes: true, Diet: true, Spicy: true, Budget: true, Delivery: true, Areas: true}
	// DiningProfile covers table booking and restaurant discovery.
	DiningProfile = Profile{Cuisines: true, Dishes: true, Diet: true, Budget: true, Areas: true, Vibes: true, PartySize: true, TimeHints: true}
)

var (
	deliveryPattern = regexp.MustCompile(`\b(?:under|within|in|less than|below|max)\s*(\d{1,3})\s*(?:min|mins|minute|minutes)\b`)
	budgetPattern   = regexp.MustCompile(`\b(?:under|below|less than|within|upto|up to|max|maximum|budget|budget of|cheaper than|around|about)\s*(?:₹|rs\s*|inr\s*)?(\d{2,6})(\s*(?:min|mins|minute|minutes|am|pm|people|persons|pax|guests)\b)?`)
	currencyPattern = regexp.MustCompile(`(?:₹|\brs\s*|\binr\s*)(\d{2,6})\b`)
	rupeesPattern   = regexp.MustCompile(`\b(\d{2,6})\s*(?:rupees|rs|inr)\b`)
	partyForPattern = regexp.MustCompile(`\bfor\s+(\d{1,2}|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)\b(\s*(?:am|pm)\b)?`)
	partyPplPattern = regexp.MustCompile(`\b(\d{1,2}|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)\s*(?:people|persons|person|pax|guests|adults)\b`)
	clockPattern    = regexp.MustCompile(`\b\d{1,2}(?::\d{2})?\s*(?:am|pm)\b`)
	dayWordPattern  = regexp.MustCompile(`\b(tonight|today|tomorrow|breakfast|brunch|lunch|dinner|weekend|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	veganPattern    = regexp.MustCompile(`\bvegan\b`)
	nonVegPattern   = regexp.MustCompile(`\b(?:non veg|nonveg|non vegetarian)\b`)
	vegPattern      = regexp.MustCompile(`\b(?:veg|vegetarian|pure veg|veggie)\b`)
	spicyPattern    = regexp.MustCompile(`\b(?:spicy|spice|fiery|chilli|chili|teekha|hot and spicy)\b`)
	areaCapture     = regexp.MustCompile(`\b(?:in|near|around|at)\s+([a-z][a-z ]*)`)
	broadenPattern  = regexp.MustCompile(`\b(?:broaden|show more|anything|relax|widen|more options|other options|any option|doesn t matter|don t care)\b`)
)

// maxAreaWords bounds the generic area capture.
const maxAreaWords = 3

var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// Extractor pulls constraints out of query text using a Gazetteer.
type Extractor struct {
	gz *Gazetteer
}

func NewExtractor(gz *Gazetteer) *Extractor {
	if gz == nil {
		gz = DefaultGazetteer
	}
	return &Extractor{gz: gz}
}

var defaultExtractor = NewExtractor(DefaultGazetteer)

// ExtractFoodConstraints extracts food delivery constraints from query.
func ExtractFoodConstraints(query string) *model.StrictConstraintSnapshot {
	return defaultExtractor.Extract(query, FoodProfile)
}

// ExtractDiningConstraints extracts dining constraints from query.
func ExtractDiningConstraints(query string) *model.StrictConstraintSnapshot {
	return defaultExtractor.Extract(query, DiningProfile)
}

// ConstraintsFor picks the extraction profile for vertical. Verticals without
// a strict model yield an empty snapshot.
func ConstraintsFor(vertical, query string) *model.StrictConstraintSnapshot {
	return defaultExtractor.For(vertical, query)
}

// For extracts constraints for vertical with the matching profile.
func (e *Extractor) For(vertical, query string) *model.StrictConstraintSnapshot {
	switch vertical {
	case model.VerticalFood:
		return e.Extract(query, FoodProfile)
	case model.VerticalDining:
		return e.Extract(query, DiningProfile)
	}
	return &model.StrictConstraintSnapshot{}
}

// WantsBroaden reports whether the user asked to relax filters.
func WantsBroaden(query string) bool {
	return broadenPattern.MatchString(Normalize(query))
}

// Extract builds a fresh snapshot from query for the dimensions in p.
func (e *Extractor) Extract(query string, p Profile) *model.StrictConstraintSnapshot {
	s := &model.StrictConstraintSnapshot{}
	text := Normalize(query)
	if text == "" {
		return s
	}

	if p.Dishes || p.Cuisines {
		for _, dish := range e.gz.Dishes {
			if !containsPhrase(text, dish) {
				continue
			}
			if p.Dishes {
				s.Dishes = appendUnique(s.Dishes, dish)
			}
			if cuisine, ok := e.gz.DishCuisine[dish]; ok && p.Cuisines {
				s.Cuisines = appendUnique(s.Cuisines, cuisine)
			}
		}
	}
	if p.Cuisines {
		for _, a := range e.gz.Cuisines {
			if containsPhrase(text, a.Canonical) || containsAnyPhrase(text, a.Terms) {
				s.Cuisines = appendUnique(s.Cuisines, a.Canonical)
			}
		}
	}
	if p.Diet {
		s.Diet = extractDiet(text)
	}
	if p.Spicy {
		s.Spicy = spicyPattern.MatchString(text)
	}
	if p.Delivery {
		if m := deliveryPattern.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				s.MaxDeliveryMins = &n
			}
		}
	}
	if p.Budget {
		if b, ok := extractBudget(text); ok {
			s.BudgetMax = &b
		}
	}
	if p.PartySize {
		if n, ok := extractPartySize(text); ok {
			s.PartySize = &n
		}
	}
	if p.TimeHints {
		s.TimeHints = extractTimeHints(query)
	}
	if p.Vibes {
		for _, a := range e.gz.Vibes {
			if containsPhrase(text, a.Canonical) || containsAnyPhrase(text, a.Terms) {
				s.Vibes = appendUnique(s.Vibes, a.Canonical)
			}
		}
	}
	if p.Areas {
		s.Areas = e.extractAreas(text)
	}
	return s
}

// extractDiet applies vegan > non-veg > veg precedence.
func extractDiet(text string) string {
	switch {
	case veganPattern.MatchString(text):
		return model.DietVegan
	case nonVegPattern.MatchString(text):
		return model.DietNonVeg
	case vegPattern.MatchString(text):
		return model.DietVeg
	}
	return ""
}

// extractBudget skips amounts followed by a minutes, clock or head-count
// unit so delivery ceilings and times are not read as prices.
func extractBudget(text string) (float64, bool) {
	for _, m := range budgetPattern.FindAllStringSubmatch(text, -1) {
		if strings.TrimSpace(m[2]) != "" {
			continue
		}
		if f, err := strconv.ParseFloat(m[1], 64); err == nil && f > 0 {
			return f, true
		}
	}
	for _, re := range []*regexp.Regexp{currencyPattern, rupeesPattern} {
		if m := re.FindStringSubmatch(text); m != nil {
			if f, err := strconv.ParseFloat(m[1], 64); err == nil && f > 0 {
				return f, true
			}
		}
	}
	return 0, false
}

func extractPartySize(text string) (int, bool) {
	for _, m := range partyForPattern.FindAllStringSubmatch(text, -1) {
		if strings.TrimSpace(m[2]) != "" {
			continue
		}
		if n, ok := parseCount(m[1]); ok {
			return n, true
		}
	}
	if m := partyPplPattern.FindStringSubmatch(text); m != nil {
		return parseCount(m[1])
	}
	return 0, false
}

func parseCount(s string) (int, bool) {
	if n, ok := wordNumbers[s]; ok {
		return n, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// extractTimeHints works on the raw text so clock separators survive.
func extractTimeHints(query string) []string {
	lower := strings.ToLower(query)
	var hints []string
	for _, m := range clockPattern.FindAllString(lower, -1) {
		hints = appendUnique(hints, strings.Join(strings.Fields(m), " "))
	}
	for _, m := range dayWordPattern.FindAllString(lower, -1) {
		hints = appendUnique(hints, m)
	}
	return hints
}

// extractAreas combines gazetteer hits with a generic "in/near/around/at
// <words>" capture that stops at break tokens.
func (e *Extractor) extractAreas(text string) []string {
	var areas []string
	for _, area := range e.gz.Areas {
		if containsPhrase(text, area) {
			areas = appendUnique(areas, area)
		}
	}

	for _, m := range areaCapture.FindAllStringSubmatch(text, -1) {
		var words []string
		for _, w := range strings.Fields(m[1]) {
			if e.gz.BreakTokens[w] || len(words) == maxAreaWords {
				break
			}
			words = append(words, w)
		}
		if len(words) == 0 || stopWords[words[0]] || e.gz.NonPlaces[words[0]] {
			continue
		}
		candidate := strings.Join(words, " ")
		if e.isKnownTerm(candidate) || coveredBy(areas, candidate) {
			continue
		}
		areas = appendUnique(areas, candidate)
	}
	return areas
}

// isKnownTerm rejects captures that are really cuisines, dishes or vibes.
func (e *Extractor) isKnownTerm(phrase string) bool {
	for _, a := range e.gz.Cuisines {
		if phrase == a.Canonical || containsAnyPhrase(phrase, a.Terms) {
			return true
		}
	}
	for _, a := range e.gz.Vibes {
		if phrase == a.Canonical || containsAnyPhrase(phrase, a.Terms) {
			return true
		}
	}
	return containsAnyPhrase(phrase, e.gz.Dishes)
}

func coveredBy(areas []string, candidate string) bool {
	for _, a := range areas {
		if containsPhrase(candidate, a) {
			return true
		}
	}
	return false
}

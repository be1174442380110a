// FILE: pkg/relevance/gazetteer.go
// PURPOSE: Swappable keyword tables used by constraint extraction

package relevance

// Alias maps a canonical value to the phrases that imply it.
type Alias struct {
	Canonical string
	Terms     []string
}

// Gazetteer holds the lookup tables for constraint extraction. All phrases
// are lowercase and already normalized.
type Gazetteer struct {
	Cuisines    []Alias
	DishCuisine map[string]string
	Dishes      []string
	Areas       []string
	Vibes       []Alias
	BreakTokens map[string]bool
	// NonPlaces are words that follow "in"/"at" without naming a locality
	// (at home, in town). A capture starting with one is dropped.
	NonPlaces map[string]bool
}

// DefaultGazetteer is tuned for Indian food delivery and Bengaluru dining.
var DefaultGazetteer = &Gazetteer{
	Cuisines: []Alias{
		{"south indian", []string{"south indian", "udupi", "andhra", "chettinad", "kerala", "tamil"}},
		{"north indian", []string{"north indian", "punjabi", "mughlai", "awadhi"}},
		{"chinese", []string{"chinese", "indo chinese", "schezwan", "szechuan", "cantonese"}},
		{"italian", []string{"italian", "pizzeria", "trattoria"}},
		{"thai", []string{"thai"}},
		{"japanese", []string{"japanese", "sushi bar"}},
		{"korean", []string{"korean"}},
		{"mexican", []string{"mexican", "tex mex"}},
		{"continental", []string{"continental", "european"}},
		{"american", []string{"american"}},
		{"mediterranean", []string{"mediterranean", "lebanese", "greek", "middle eastern", "arabian"}},
		{"biryani", []string{"hyderabadi"}},
		{"bengali", []string{"bengali"}},
		{"desserts", []string{"desserts", "dessert", "sweets", "bakery"}},
		{"cafe", []string{"cafe", "coffee"}},
		{"street food", []string{"street food", "chaat"}},
		{"fast food", []string{"fast food"}},
		{"healthy", []string{"healthy", "salad", "salads", "keto"}},
	},
	DishCuisine: map[string]string{
		"dosa":           "south indian",
		"masala dosa":    "south indian",
		"idli":           "south indian",
		"vada":           "south indian",
		"uttapam":        "south indian",
		"pongal":         "south indian",
		"appam":          "south indian",
		"biryani":        "biryani",
		"butter chicken": "north indian",
		"dal makhani":    "north indian",
		"paneer tikka":   "north indian",
		"naan":           "north indian",
		"chole bhature":  "north indian",
		"kebab":          "north indian",
		"noodles":        "chinese",
		"hakka noodles":  "chinese",
		"fried rice":     "chinese",
		"manchurian":     "chinese",
		"momos":          "chinese",
		"dim sum":        "chinese",
		"pizza":          "italian",
		"pasta":          "italian",
		"risotto":        "italian",
		"lasagna":        "italian",
		"sushi":          "japanese",
		"ramen":          "japanese",
		"pad thai":       "thai",
		"green curry":    "thai",
		"tacos":          "mexican",
		"burrito":        "mexican",
		"nachos":         "mexican",
		"burger":         "american",
		"fries":          "american",
		"shawarma":       "mediterranean",
		"falafel":        "mediterranean",
		"hummus":         "mediterranean",
		"cake":           "desserts",
		"ice cream":      "desserts",
		"brownie":        "desserts",
		"pani puri":      "street food",
		"pav bhaji":      "street food",
	},
	Dishes: []string{
		"masala dosa", "dosa", "idli", "vada", "uttapam", "pongal", "appam",
		"biryani", "butter chicken", "dal makhani", "paneer tikka", "paneer", "naan",
		"chole bhature", "kebab", "hakka noodles", "noodles", "fried rice", "manchurian",
		"momos", "dim sum", "pizza", "pasta", "risotto", "lasagna", "sushi", "ramen",
		"pad thai", "green curry", "tacos", "burrito", "nachos", "burger", "fries",
		"shawarma", "falafel", "hummus", "cake", "ice cream", "brownie", "pani puri",
		"pav bhaji", "thali", "sandwich", "wrap", "salad", "soup", "rolls", "tikka",
	},
	Areas: []string{
		"koramangala", "indiranagar", "hsr layout", "hsr", "jayanagar", "jp nagar",
		"whitefield", "marathahalli", "bellandur", "sarjapur", "electronic city",
		"btm layout", "btm", "mg road", "brigade road", "church street", "ub city",
		"malleshwaram", "rajajinagar", "basavanagudi", "banashankari", "hebbal",
		"yelahanka", "frazer town", "ulsoor", "domlur", "cunningham road",
		"lavelle road", "residency road", "richmond town", "hennur", "kalyan nagar",
		"rt nagar", "sadashivanagar", "old airport road", "bannerghatta road",
	},
	Vibes: []Alias{
		{"romantic", []string{"romantic", "date night", "date", "candlelight", "candle light", "anniversary"}},
		{"rooftop", []string{"rooftop", "terrace", "open air", "skyline"}},
		{"family", []string{"family", "kids", "kid friendly", "family friendly"}},
		{"quiet", []string{"quiet", "peaceful", "calm"}},
		{"lively", []string{"lively", "vibrant", "happening", "party"}},
		{"cozy", []string{"cozy", "cosy", "intimate"}},
		{"outdoor", []string{"outdoor", "alfresco", "garden"}},
		{"fine dining", []string{"fine dining", "upscale", "luxury", "fancy"}},
		{"casual", []string{"casual", "chill", "laid back"}},
		{"live music", []string{"live music", "live band", "music"}},
		{"pet friendly", []string{"pet friendly", "dog friendly"}},
		{"buffet", []string{"buffet"}},
		{"bar", []string{"bar", "pub", "brewery", "microbrewery", "drinks"}},
	},
	BreakTokens: setOf(
		"for", "with", "and", "or", "under", "below", "within", "tonight", "today",
		"tomorrow", "this", "next", "at", "on", "by", "around", "near", "in",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
		"weekend", "morning", "afternoon", "evening", "night", "lunch", "dinner",
		"breakfast", "brunch", "people", "persons", "pm", "am", "that", "which",
		"please", "serving", "having", "budget", "veg", "spicy", "delivery",
	),
	NonPlaces: setOf(
		"home", "house", "town", "city", "office", "work", "mind", "hurry", "time",
		"advance", "bulk", "stock", "cash", "hand", "total", "general", "mood",
		"person", "rupees", "rs", "inr", "range", "price", "cost", "once",
	),
}

// CuisineTerms returns the canonical name plus aliases of cuisine.
func (g *Gazetteer) CuisineTerms(cuisine string) []string {
	for _, a := range g.Cuisines {
		if a.Canonical == cuisine {
			return append([]string{a.Canonical}, a.Terms...)
		}
	}
	return []string{cuisine}
}

// VibeTerms returns the canonical vibe plus its aliases.
func (g *Gazetteer) VibeTerms(vibe string) []string {
	for _, a := range g.Vibes {
		if a.Canonical == vibe {
			return append([]string{a.Canonical}, a.Terms...)
		}
	}
	return []string{vibe}
}

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

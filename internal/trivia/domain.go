// Package trivia defines the three content domains served by the API and the
// per-domain metadata (schemas, prompts, storage names) the resolver and
// generator are parameterized with.
package trivia

// Domain describes one content category. All pipeline code is generic over
// this descriptor; the three categories differ only in the values below.
type Domain struct {
	// Slug is the URL path segment, e.g. "historical-events".
	Slug string
	// Dir is the storage directory under the data root, e.g. "historicalEvents".
	Dir string
	// Title is the human-readable name, e.g. "Historical Events".
	Title string
	// Noun names the items in prompts, logs and error messages,
	// e.g. "historical events".
	Noun string
	// ItemsKey is the JSON key of the items array in a stored document,
	// e.g. "events".
	ItemsKey string

	// Run artifact filenames, relative to the data root. The historical
	// events domain predates the other two and keeps its original
	// unprefixed names for file compatibility.
	ProgressFile string
	SummaryFile  string
	IndexFile    string

	// Prompt is the text/template body used to request one day's content.
	// It receives PromptData.
	Prompt string
}

// PromptData is the data passed to a domain's prompt template.
type PromptData struct {
	// Date is the human-readable date, e.g. "July 4".
	Date string
}

// HistoricalEvent is one item in a historical-events document.
type HistoricalEvent struct {
	Year         int    `json:"year"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Significance string `json:"significance"`
}

// WeirdHoliday is one item in a weird-holidays document.
type WeirdHoliday struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Origin      string `json:"origin"`
	Category    string `json:"category"`
	Emoji       string `json:"emoji"`
	FunFact     string `json:"funFact"`
}

// BloomingPlant is one item in a blooming-plants document.
type BloomingPlant struct {
	Name           string   `json:"name"`
	CommonName     string   `json:"commonName"`
	Description    string   `json:"description"`
	BloomingSeason string   `json:"bloomingSeason"`
	Location       string   `json:"location"`
	Emoji          string   `json:"emoji"`
	FunFact        string   `json:"funFact"`
	Colors         []string `json:"colors"`
}

// HistoricalEvents is the historical events domain.
var HistoricalEvents = Domain{
	Slug:         "historical-events",
	Dir:          "historicalEvents",
	Title:        "Historical Events",
	Noun:         "historical events",
	ItemsKey:     "events",
	ProgressFile: "generation-progress.json",
	SummaryFile:  "summary.json",
	IndexFile:    "file-index.json",
	Prompt: `List notable historical events that happened on {{.Date}} (any year).

Return your response as a single JSON object in exactly this format:
{
  "date": "{{.Date}}",
  "events": [
    {
      "year": 1776,
      "title": "Short event title",
      "description": "One or two sentences describing what happened.",
      "category": "politics | science | culture | war | exploration | other",
      "significance": "Why this event mattered."
    }
  ]
}

Include 5 to 10 events spanning different centuries and categories.
Return only the JSON object, no other text.`,
}

// WeirdHolidays is the weird holidays domain.
var WeirdHolidays = Domain{
	Slug:         "weird-holidays",
	Dir:          "weirdHolidays",
	Title:        "Weird Holidays",
	Noun:         "weird holidays",
	ItemsKey:     "holidays",
	ProgressFile: "weirdHolidays-progress.json",
	SummaryFile:  "weirdHolidays-summary.json",
	IndexFile:    "weirdHolidays-index.json",
	Prompt: `List unusual, obscure or funny holidays celebrated on {{.Date}}.

Return your response as a single JSON object in exactly this format:
{
  "date": "{{.Date}}",
  "holidays": [
    {
      "name": "Holiday name",
      "description": "What the holiday celebrates.",
      "origin": "How or where the holiday started.",
      "category": "food | animals | hobbies | awareness | silly | other",
      "emoji": "a single fitting emoji",
      "funFact": "A surprising fact about the holiday."
    }
  ]
}

Include 3 to 8 holidays. Real observances only, however obscure.
Return only the JSON object, no other text.`,
}

// BloomingPlants is the blooming plants domain.
var BloomingPlants = Domain{
	Slug:         "blooming-plants",
	Dir:          "bloomingPlants",
	Title:        "Blooming Plants",
	Noun:         "blooming plants",
	ItemsKey:     "plants",
	ProgressFile: "bloomingPlants-progress.json",
	SummaryFile:  "bloomingPlants-summary.json",
	IndexFile:    "bloomingPlants-index.json",
	Prompt: `List plants that are typically in bloom around {{.Date}} in the northern hemisphere.

Return your response as a single JSON object in exactly this format:
{
  "date": "{{.Date}}",
  "plants": [
    {
      "name": "Scientific name",
      "commonName": "Common name",
      "description": "One or two sentences about the plant.",
      "bloomingSeason": "e.g. early spring",
      "location": "Typical regions or habitats",
      "emoji": "a single fitting emoji",
      "funFact": "A surprising fact about the plant.",
      "colors": ["typical", "bloom", "colors"]
    }
  ]
}

Include 4 to 8 plants with varied colors and habitats.
Return only the JSON object, no other text.`,
}

// All returns the three domains in a stable order.
func All() []Domain {
	return []Domain{HistoricalEvents, WeirdHolidays, BloomingPlants}
}

// BySlug looks up a domain by its URL slug.
func BySlug(slug string) (Domain, bool) {
	for _, d := range All() {
		if d.Slug == slug {
			return d, true
		}
	}
	return Domain{}, false
}

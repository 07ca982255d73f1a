package domain

// DefaultCategory is reported when no category or keyword applies.
const DefaultCategory = "general"

// SentimentLabel is the polarity of a text.
type SentimentLabel string

// Sentiment labels.
const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

// Sentiment is a polarity label with a confidence in [0.5, 0.9].
type Sentiment struct {
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
}

// NeutralSentiment is the sentiment of a text with no lexicon hits.
func NeutralSentiment() Sentiment {
	return Sentiment{Label: SentimentNeutral, Confidence: 0.5}
}

// TextAnalysis is the result of analysing a single text.
type TextAnalysis struct {
	RequestID        string    `json:"request_id"`
	WordCount        int       `json:"word_count"`
	CharCount        int       `json:"char_count"`
	Summary          string    `json:"summary"`
	Keywords         []string  `json:"keywords"`
	Sentiment        Sentiment `json:"sentiment"`
	Categories       []string  `json:"categories"`
	Language         string    `json:"language"`
	DetectedLanguage string    `json:"detected_language,omitempty"`
	ProcessingTime   float64   `json:"processing_time"`
}

// ExtractedDate is a date found in text.
// ISO is the normalised form when the date could be parsed.
type ExtractedDate struct {
	Text string `json:"text"`
	ISO  string `json:"iso,omitempty"`
}

// ExtractedInfo holds structured fields pulled out of text.
// Every list is de-duplicated and in first-seen order.
type ExtractedInfo struct {
	Emails         []string        `json:"emails"`
	Phones         []string        `json:"phones"`
	URLs           []string        `json:"urls"`
	Dates          []ExtractedDate `json:"dates"`
	Documents      []string        `json:"documents"`
	MonetaryValues []string        `json:"monetary_values"`
}

// Count returns the total number of extracted items.
func (e ExtractedInfo) Count() int {
	return len(e.Emails) + len(e.Phones) + len(e.URLs) + len(e.Dates) +
		len(e.Documents) + len(e.MonetaryValues)
}

// PDFInfo describes a PDF without extracting its full text.
type PDFInfo struct {
	PageCount        int    `json:"page_count"`
	Title            string `json:"title,omitempty"`
	Author           string `json:"author,omitempty"`
	Subject          string `json:"subject,omitempty"`
	Creator          string `json:"creator,omitempty"`
	Producer         string `json:"producer,omitempty"`
	CreationDate     string `json:"creation_date,omitempty"`
	ModificationDate string `json:"modification_date,omitempty"`
	Encrypted        bool   `json:"encrypted"`
	HasText          bool   `json:"has_text"`
	FileSize         int    `json:"file_size"`
}

// Health states.
const (
	HealthHealthy  = "healthy"
	HealthDegraded = "degraded"
)

// HealthReport summarises component availability.
type HealthReport struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

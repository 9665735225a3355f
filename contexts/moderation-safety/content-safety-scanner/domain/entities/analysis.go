package entities

type Category string

const (
	CategoryEmail        Category = "email"
	CategoryPhone        Category = "phone"
	CategorySocial       Category = "social"
	CategoryMessaging    Category = "messaging"
	CategoryWebsite      Category = "website"
	CategoryBypassPhrase Category = "bypass_phrase"
)

// ScanOrder is the order in which categories are evaluated. Generic website
// rules run after the host-specific social and messaging rules so a known
// platform link is attributed to the more specific category.
var ScanOrder = []Category{
	CategoryEmail,
	CategoryPhone,
	CategorySocial,
	CategoryMessaging,
	CategoryWebsite,
	CategoryBypassPhrase,
}

func (c Category) Known() bool {
	for _, known := range ScanOrder {
		if c == known {
			return true
		}
	}
	return false
}

type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Violation is one attributed match. Position is a byte offset into the
// analysed text.
type Violation struct {
	Category    Category
	Rule        string
	MatchedText string
	Position    int
	Length      int
}

type ContentAnalysisResult struct {
	IsClean            bool
	RiskScore          int
	RiskLevel          RiskLevel
	Violations         []Violation
	RedactedContent    string
	RequiresModeration bool
	ShouldBlock        bool
	PatternVersion     string
}

// Categories lists the distinct categories of the result's violations in
// scan order.
func (r ContentAnalysisResult) Categories() []Category {
	seen := make(map[Category]struct{}, len(r.Violations))
	out := make([]Category, 0, len(r.Violations))
	for _, item := range r.Violations {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		out = append(out, item.Category)
	}
	return out
}

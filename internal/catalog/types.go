package catalog

import "slices"

// Question is the immutable content of a catalog question.
type Question struct {
	ID       string   `json:"id"`
	RegionID string   `json:"region_id"`
	Prompt   string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Clone returns a deep copy of q.
func (q Question) Clone() Question {
	q.Options = slices.Clone(q.Options)
	return q
}

// record is the on-disk shape of a question. Every field is optional at
// decode time; defaults are applied by normalize.
type record struct {
	ID       string   `json:"id"`
	RegionID string   `json:"region_id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// normalize converts a decoded record into a Question, using fallbackRegion
// when the record carries no region_id.
func (r record) normalize(fallbackRegion string) Question {
	regionID := r.RegionID
	if regionID == "" {
		regionID = fallbackRegion
	}
	options := r.Options
	if options == nil {
		options = []string{}
	}
	return Question{
		ID:       r.ID,
		RegionID: regionID,
		Prompt:   r.Question,
		Options:  options,
		Answer:   r.Answer,
	}
}

// Shape identifies which historical catalog layout a file uses.
type Shape string

const (
	ShapeFlat        Shape = "flat"
	ShapePartitioned Shape = "partitioned"
	ShapeUnknown     Shape = "unknown"
)

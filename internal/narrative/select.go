package narrative

import (
	"github.com/kapu/chess-replay-go/internal/overlay"
)

// Data feeds the narrative templates for one cursor position.
type Data struct {
	Opening    string
	ECO        string
	SAN        string
	MoveNumber int
	Moment     string
}

// Describe selects and renders the template for a book classification.
// The selection contract: kind plus key-moment presence picks the key;
// wording lives entirely in the catalog.
func (c *Catalog) Describe(cls overlay.BookClassification, d Data) (string, error) {
	if cls.KeyMoment != nil && cls.KeyMoment.Meta != nil {
		if moment, err := c.Render("moment."+string(cls.KeyMoment.Meta.MomentType), nil); err == nil {
			d.Moment = moment
		} else {
			d.Moment = string(cls.KeyMoment.Meta.MomentType)
		}
	}

	key := "narrative.postbook"
	switch {
	case cls.Kind == overlay.KindStart:
		key = "narrative.start"
	case cls.Kind == overlay.KindBook && cls.KeyMoment != nil:
		key = "narrative.book_keymoment"
	case cls.Kind == overlay.KindBook:
		key = "narrative.book"
	case cls.KeyMoment != nil:
		key = "narrative.postbook_keymoment"
	}
	return c.Render(key, d)
}

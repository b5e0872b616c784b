package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/catalog"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/models"
)

const (
	MinCount     = 1
	MaxCount     = 5
	DefaultCount = 1
)

// ErrInvalidSelection is returned when a posted value is not in its catalog
var ErrInvalidSelection = errors.New("form: invalid selection")

// Selections holds the operator's current choices
type Selections struct {
	Brand       catalog.Brand
	Channel     string
	LabelReason catalog.LabelReason
	Prompt      string
	Count       int
	Language    string
}

// DefaultSelections returns the first entry of every catalog
func DefaultSelections() Selections {
	return Selections{
		Brand:       catalog.DefaultBrand(),
		Channel:     catalog.DefaultChannel(),
		LabelReason: catalog.DefaultLabelReason(),
		Count:       DefaultCount,
		Language:    catalog.DefaultLanguage().Value,
	}
}

// FormInput is the posted form as bound by gin
type FormInput struct {
	Brand       string `form:"brand" binding:"required"`
	Channel     string `form:"channel" binding:"required"`
	LabelReason string `form:"label_reason" binding:"required"`
	Prompt      string `form:"prompt"`
	Count       string `form:"count"`
	Language    string `form:"language" binding:"required"`
}

// Normalize validates every enumerated field against the catalog, trims the
// prompt and clamps the count. The returned error wraps ErrInvalidSelection.
func (in FormInput) Normalize() (Selections, error) {
	sel, err := in.Draft()
	if err != nil {
		return Selections{}, err
	}
	sel.Prompt = strings.TrimSpace(sel.Prompt)
	sel.Count = ParseCount(in.Count)
	return sel, nil
}

// Draft validates the enumerated fields like Normalize but keeps the prompt
// and count as typed, so re-rendering the form does not rewrite them.
// A count that is not an integer becomes MinCount.
func (in FormInput) Draft() (Selections, error) {
	brand, ok := catalog.FindBrand(in.Brand)
	if !ok {
		return Selections{}, fmt.Errorf("%w: brand %q", ErrInvalidSelection, in.Brand)
	}
	if !catalog.IsChannel(in.Channel) {
		return Selections{}, fmt.Errorf("%w: channel %q", ErrInvalidSelection, in.Channel)
	}
	lr, ok := catalog.FindLabelReason(in.LabelReason)
	if !ok {
		return Selections{}, fmt.Errorf("%w: label/reason %q", ErrInvalidSelection, in.LabelReason)
	}
	if _, ok := catalog.FindLanguage(in.Language); !ok {
		return Selections{}, fmt.Errorf("%w: language %q", ErrInvalidSelection, in.Language)
	}

	count, err := strconv.Atoi(strings.TrimSpace(in.Count))
	if err != nil {
		count = MinCount
	}

	return Selections{
		Brand:       brand,
		Channel:     in.Channel,
		LabelReason: lr,
		Prompt:      in.Prompt,
		Count:       count,
		Language:    in.Language,
	}, nil
}

// ParseCount parses a posted count and clamps it to [MinCount, MaxCount].
// Anything that is not an integer becomes MinCount.
func ParseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return MinCount
	}
	return ClampCount(n)
}

// ClampCount forces n into [MinCount, MaxCount]
func ClampCount(n int) int {
	if n < MinCount {
		return MinCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

// Request builds the wire request for the generation service
func (s Selections) Request() models.GenerationRequest {
	return models.GenerationRequest{
		BrandContextPath: s.Brand.Value,
		Channel:          s.Channel,
		LabelReason: models.LabelReason{
			Label:  s.LabelReason.Label,
			Reason: s.LabelReason.Reason,
		},
		Prompt:   s.Prompt,
		Count:    ClampCount(s.Count),
		Language: s.Language,
	}
}

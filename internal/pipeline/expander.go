package pipeline

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/strrl/model-exploder/internal/parser"
)

type Row struct {
	Utterance string
	Intent    string
}

// UnresolvedPolicy decides what happens to a sample whose placeholder has
// no slot declaration on its intent.
type UnresolvedPolicy string

const (
	// UnresolvedSkip drops the sample and logs a warning.
	UnresolvedSkip UnresolvedPolicy = "skip"
	// UnresolvedPassthrough ignores the unmatched placeholder when building
	// the product, so values fill the remaining placeholders in order and
	// any leftover token stays in the text.
	UnresolvedPassthrough UnresolvedPolicy = "passthrough"
)

func ParseUnresolvedPolicy(s string) (UnresolvedPolicy, error) {
	switch p := UnresolvedPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", UnresolvedSkip:
		return UnresolvedSkip, nil
	case UnresolvedPassthrough:
		return p, nil
	default:
		return "", fmt.Errorf("unknown unresolved policy %q (want %s or %s)", s, UnresolvedSkip, UnresolvedPassthrough)
	}
}

// UnresolvedSlotError describes a placeholder that could not be bound to a
// value list. SlotType is set when the declaration exists but names a slot
// type the model does not define.
type UnresolvedSlotError struct {
	Intent      string
	Sample      string
	Placeholder string
	SlotType    string
}

func (e *UnresolvedSlotError) Error() string {
	if e.SlotType != "" {
		return fmt.Sprintf("intent %s: slot {%s} uses undefined slot type %q", e.Intent, e.Placeholder, e.SlotType)
	}
	return fmt.Sprintf("intent %s: placeholder {%s} has no slot declaration", e.Intent, e.Placeholder)
}

// Stats counts what the expander did. Counts accumulate across calls.
type Stats struct {
	IntentsExpanded   int
	IntentsSkipped    int
	Samples           int
	SamplesBuiltin    int
	SamplesUnresolved int
	Rows              int
}

type Expander struct {
	slots  SlotValues
	policy UnresolvedPolicy
	logger *slog.Logger
	stats  Stats
}

func NewExpander(slots SlotValues, policy UnresolvedPolicy, logger *slog.Logger) *Expander {
	if policy == "" {
		policy = UnresolvedSkip
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Expander{
		slots:  slots,
		policy: policy,
		logger: logger,
	}
}

func (e *Expander) Stats() Stats {
	return e.stats
}

// Expandable reports whether the intent produces any rows at all: it needs
// samples and a name outside the built-in namespace.
func Expandable(intent parser.Intent) bool {
	return len(intent.Samples) > 0 && !intent.IsBuiltin()
}

// Expand lazily yields the training rows for one intent, sample by sample.
func (e *Expander) Expand(intent parser.Intent) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		if !Expandable(intent) {
			e.stats.IntentsSkipped++
			return
		}
		e.stats.IntentsExpanded++

		builtins := builtinPlaceholders(intent)
		for _, sample := range intent.Samples {
			if !e.expandSample(intent, builtins, sample, yield) {
				return
			}
		}
	}
}

func (e *Expander) expandSample(intent parser.Intent, builtins []string, sample string, yield func(Row) bool) bool {
	e.stats.Samples++

	for _, token := range builtins {
		if strings.Contains(sample, token) {
			e.stats.SamplesBuiltin++
			e.logger.Debug("skipping sample with built-in slot",
				slog.String("intent", intent.Name),
				slog.String("sample", sample),
				slog.String("placeholder", token),
			)
			return true
		}
	}

	tmpl := ParseTemplate(sample)
	if len(tmpl.Placeholders) == 0 {
		return e.emit(yield, FormatLine(sample), intent.Name)
	}

	lists, passedThrough, err := e.resolve(intent, tmpl)
	if err != nil || passedThrough {
		e.stats.SamplesUnresolved++
	}
	if err != nil {
		e.logger.Warn("skipping sample",
			slog.String("intent", intent.Name),
			slog.String("sample", sample),
			slog.String("error", err.Error()),
		)
		return true
	}

	for combo := range Product(lists) {
		if !e.emit(yield, FormatLine(tmpl.Fill(combo)), intent.Name) {
			return false
		}
	}
	return true
}

// resolve returns one value list per placeholder in encounter order. Under
// UnresolvedPassthrough an undeclared placeholder is left out of the result
// and passedThrough is set.
func (e *Expander) resolve(intent parser.Intent, tmpl Template) (lists [][]string, passedThrough bool, err error) {
	lists = make([][]string, 0, len(tmpl.Placeholders))

	for _, ph := range tmpl.Placeholders {
		slot, ok := intent.Slot(ph.Name)
		if !ok {
			if e.policy != UnresolvedPassthrough {
				return nil, false, &UnresolvedSlotError{Intent: intent.Name, Sample: tmpl.Text, Placeholder: ph.Name}
			}
			passedThrough = true
			e.logger.Warn("placeholder has no slot declaration, passing through",
				slog.String("intent", intent.Name),
				slog.String("sample", tmpl.Text),
				slog.String("placeholder", ph.Name),
			)
			continue
		}

		values, ok := e.slots[slot.Type]
		if !ok {
			return nil, false, &UnresolvedSlotError{Intent: intent.Name, Sample: tmpl.Text, Placeholder: ph.Name, SlotType: slot.Type}
		}
		lists = append(lists, values)
	}

	return lists, passedThrough, nil
}

func (e *Expander) emit(yield func(Row) bool, utterance, intent string) bool {
	e.stats.Rows++
	return yield(Row{Utterance: utterance, Intent: intent})
}

func builtinPlaceholders(intent parser.Intent) []string {
	var tokens []string
	for _, slot := range intent.Slots {
		if slot.IsBuiltin() {
			tokens = append(tokens, slot.Placeholder())
		}
	}
	return tokens
}

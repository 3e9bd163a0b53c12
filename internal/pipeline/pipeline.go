package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/strrl/model-exploder/internal/parser"
)

// Sink receives expanded rows one at a time.
type Sink interface {
	Write(row Row) error
}

type Config struct {
	Unresolved UnresolvedPolicy
}

type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// Process compiles the slot types of lm and streams every intent's expanded
// rows into sink, in intent and sample order. The first sink error aborts.
func (p *Pipeline) Process(lm *parser.LanguageModel, sink Sink) (Stats, error) {
	slots := CompileSlots(lm.Types)
	p.logger.Debug("compiled slot types", slog.Int("types", len(slots)))

	expander := NewExpander(slots, p.cfg.Unresolved, p.logger)

	for _, intent := range lm.Intents {
		if Expandable(intent) {
			p.logger.Info("processing utterances for intent",
				slog.String("intent", intent.Name),
				slog.Int("samples", len(intent.Samples)),
			)
		} else {
			p.logger.Debug("skipping intent", slog.String("intent", intent.Name))
		}

		for row := range expander.Expand(intent) {
			if err := sink.Write(row); err != nil {
				return expander.Stats(), fmt.Errorf("write row for intent %s: %w", intent.Name, err)
			}
		}
	}

	return expander.Stats(), nil
}

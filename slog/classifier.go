package slog

import (
	"log/slog"
	"time"

	"github.com/mzalewski/fragset"
)

// Ensure LoggingClassifier implements fragset.Classifier.
var _ fragset.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with per-fragment verdict logging.
type LoggingClassifier struct {
	next   fragset.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next fragset.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify delegates to the wrapped classifier and logs the verdict.
func (c *LoggingClassifier) Classify(frag *fragset.Fragment) fragset.Verdict {
	begin := time.Now()
	verdict := c.next.Classify(frag)
	negative := verdict.NegativeType
	if negative == "" {
		negative = "(none)"
	}
	c.logger.Info("classification",
		"fragment_type", frag.Type,
		"url", frag.SourceURL,
		"valid", verdict.IsValid,
		"score", verdict.Score,
		"negative_type", negative,
		"duration", time.Since(begin),
	)
	return verdict
}

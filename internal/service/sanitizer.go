package service

import (
	goaway "github.com/TwiN/go-away"
	"go.uber.org/zap"
)

// Sanitizer enmascara groserías en el input crudo del usuario.
// Siempre devuelve un string; identidad si no hay nada que censurar.
type Sanitizer struct {
	logger   *zap.Logger
	detector *goaway.ProfanityDetector
}

func NewSanitizer(logger *zap.Logger) *Sanitizer {
	return &Sanitizer{
		logger:   logger,
		detector: goaway.NewProfanityDetector(),
	}
}

func (s *Sanitizer) Clean(text string) string {
	censored := s.detector.Censor(text)
	if censored != text && s.logger != nil {
		s.logger.Warn("profanity censored")
	}
	return censored
}

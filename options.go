package quire

import "go.uber.org/zap"

// Options holds configuration for one assembly.
type Options struct {
	// Logging sink; never global. Defaults to a nop logger.
	logger *zap.Logger

	// Alt-text derivation for images without one, via the ocr package.
	altTextOCR  bool
	ocrLanguage string
}

// defaultOptions returns the default assembly options.
func defaultOptions() Options {
	return Options{
		logger:      zap.NewNop(),
		altTextOCR:  false,
		ocrLanguage: "eng",
	}
}

// clone creates a copy of Options. The logger is shared by reference;
// everything else is a value.
func (o Options) clone() Options {
	return o
}

package transforms

import (
	"strings"

	"github.com/smohring/contao-cearch-pro/internal/core/services"
)

// DefaultNames is the pipeline applied when no transforms are configured.
var DefaultNames = []string{"softhyphen", "zerowidth"}

// RegisterDefaults registers the built-in transforms with the registry.
func RegisterDefaults(r *Registry) {
	r.Register("softhyphen", stripSoftHyphens)
	r.Register("zerowidth", stripZeroWidth)
}

// Defaults returns the default pipeline.
func Defaults() []services.Transform {
	r := NewRegistry()
	RegisterDefaults(r)
	pipeline, err := r.Build(DefaultNames)
	if err != nil {
		panic(err)
	}
	return pipeline
}

// Hyphenated page renderers leave soft hyphens inside words, which
// would split tokens and break phrase matching.
var softHyphenReplacer = strings.NewReplacer("­", "")

func stripSoftHyphens(text string) string {
	return softHyphenReplacer.Replace(text)
}

// Zero-width characters are invisible but change word identity.
var zeroWidthReplacer = strings.NewReplacer(
	"​", "",
	"‌", "",
	"‍", "",
	"\uFEFF", "",
)

func stripZeroWidth(text string) string {
	return zeroWidthReplacer.Replace(text)
}

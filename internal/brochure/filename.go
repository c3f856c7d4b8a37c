package brochure

import (
	"fmt"

	"amana-travel/internal/data/entity"

	"github.com/gosimple/slug"
)

// Filename is "{kind}-{slug(title)}-details.pdf".
func Filename(pkg entity.Package) string {
	s := slug.Make(pkg.Info().Title)
	if s == "" {
		s = "package"
	}
	return fmt.Sprintf("%s-%s-details.pdf", pkg.Kind(), s)
}

package cover

import (
	"fmt"
	"net/url"
)

// Service builds Pollinations-style prompt URLs for trip cover images.
// Nothing is fetched here; the stored URL renders when the browser loads it.
type Service struct {
	base string
}

func New(base string) *Service { return &Service{base: base} }

func (s *Service) CoverURL(destination string) string {
	prompt := url.PathEscape(fmt.Sprintf("travel photo of %s landmark", destination))
	return fmt.Sprintf("%s/prompt/%s?width=800&height=600&nologo=true", s.base, prompt)
}

package background

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	DefaultBaseURL = "https://image.pollinations.ai"
	Prompt         = "abstract nature, landscape, atmospheric, cinematic lighting, 8k, minimalistic"
	Width          = 720
	Height         = 1280
)

// URL returns the image address for seed. Distinct seeds give distinct images.
func URL(base string, seed int64) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/prompt/%s?width=%d&height=%d&nologo=true&seed=%d&model=flux",
		base, url.PathEscape(Prompt), Width, Height, seed)
}

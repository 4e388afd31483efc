package swipe

import "github.com/mrlokans/photoalbum/internal/photos"

// DefaultPreloadRadius is how many photos on each side of the current one are warmed.
const DefaultPreloadRadius = 1

// EffectiveRadius maps a configured preload radius to the one in use. Zero
// selects DefaultPreloadRadius; a negative radius turns preloading off.
func EffectiveRadius(radius int) (int, bool) {
	switch {
	case radius == 0:
		return DefaultPreloadRadius, true
	case radius < 0:
		return 0, false
	}
	return radius, true
}

// Preloader warms image URLs ahead of the next likely swipe. It is fire and
// forget: implementations must not block and report no result.
type Preloader interface {
	Preload(urls []string)
}

// PreloaderFunc adapts a function to the Preloader interface.
type PreloaderFunc func(urls []string)

// Preload implements Preloader.
func (f PreloaderFunc) Preload(urls []string) { f(urls) }

// PreloadWindow returns the half-open index range [from, to) within radius
// of index, clipped to a sequence of length n.
func PreloadWindow(index, n, radius int) (from, to int) {
	from = index - radius
	if from < 0 {
		from = 0
	}
	to = index + radius + 1
	if to > n {
		to = n
	}
	if from > to {
		from = to
	}
	return from, to
}

// PreloadURLs resolves the display URLs of the preload window around index.
// Photos without a path are skipped.
func PreloadURLs(list photos.List, resolver photos.Resolver, index, radius int) []string {
	from, to := PreloadWindow(index, len(list), radius)
	urls := make([]string, 0, to-from)
	for _, p := range list[from:to] {
		if u := resolver.URL(p.Path); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

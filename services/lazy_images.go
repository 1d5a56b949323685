// services/lazy_images.go
package services

import "next2play/models"

// ImageResolution is the answer to a lazy-image request.
type ImageResolution struct {
	GameID          models.GameID `json:"id"`
	Src             string        `json:"src,omitempty"`
	AlreadyResolved bool          `json:"already_resolved"`
}

// ImageLoader tracks which posters one viewer has already swapped in.
// A poster resolves exactly once; later requests mean the element is no
// longer watched.
type ImageLoader struct {
	resolved map[models.GameID]struct{}
}

func NewImageLoader() *ImageLoader {
	return &ImageLoader{resolved: make(map[models.GameID]struct{})}
}

// Resolve handles an "entered the viewport margin" signal.
func (l *ImageLoader) Resolve(id models.GameID, src string) ImageResolution {
	if _, done := l.resolved[id]; done {
		return ImageResolution{GameID: id, AlreadyResolved: true}
	}
	l.resolved[id] = struct{}{}
	return ImageResolution{GameID: id, Src: src}
}

// Force resolves regardless of proximity; used when a card is highlighted.
// Unlike Resolve it always returns the source.
func (l *ImageLoader) Force(id models.GameID, src string) ImageResolution {
	_, done := l.resolved[id]
	l.resolved[id] = struct{}{}
	return ImageResolution{GameID: id, Src: src, AlreadyResolved: done}
}

// Reset forgets everything, e.g. when the list is cleared.
func (l *ImageLoader) Reset() {
	l.resolved = make(map[models.GameID]struct{})
}

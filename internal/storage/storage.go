package storage

import (
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ImageKey builds a unique object key for a car picture.
func ImageKey(carName, ext string) string {
	base := slug.Make(carName)
	if base == "" {
		base = "car"
	}
	return "car_images/" + base + "-" + uuid.NewString() + ext
}

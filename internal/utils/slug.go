package utils

import (
	"strings"

	"github.com/gosimple/slug"
)

// SlugifyHandle normalizes a user handle: lowercase ASCII with separators
// removed, so "Cook Lover" and "cook-lover" collide.
func SlugifyHandle(handle string) string {
	return strings.ReplaceAll(slug.Make(handle), "-", "")
}

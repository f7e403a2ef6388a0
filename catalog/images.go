package catalog

import "strings"

type ImageKind int

const (
	ImageGrid ImageKind = iota
	ImageCart
	ImageWizard
	ImageDetail
)

var placeholders = map[ImageKind]string{
	ImageGrid:   "https://placehold.co/600x400?text=Sem+Imagem",
	ImageCart:   "https://placehold.co/100x100?text=Sem+Foto",
	ImageWizard: "https://placehold.co/400x400?text=Item",
	ImageDetail: "https://placehold.co/800x600?text=Sem+Imagem",
}

func PlaceholderImage(kind ImageKind) string {
	if p, ok := placeholders[kind]; ok {
		return p
	}
	return placeholders[ImageGrid]
}

// ImageOr returns url, or the placeholder for kind when url is blank.
func ImageOr(url string, kind ImageKind) string {
	if strings.TrimSpace(url) == "" {
		return PlaceholderImage(kind)
	}
	return url
}

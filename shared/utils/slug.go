package utils

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonWordRe    = regexp.MustCompile(`[^\w-]+`)
)

// Slugify: minúsculas, trim, espacios a "-" y fuera todo lo que no sea [A-Za-z0-9_-].
func Slugify(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = whitespaceRe.ReplaceAllString(s, "-")
	return nonWordRe.ReplaceAllString(s, "")
}

// SlugExists consulta si un slug ya está ocupado en el store.
type SlugExists func(ctx context.Context, slug string) (bool, error)

// UniqueSlug prueba base, base-1, base-2... hasta encontrar uno libre.
// Entre la consulta y el insert hay una ventana de carrera; la restricción
// UNIQUE de la tabla es la que decide al final.
func UniqueSlug(ctx context.Context, text string, exists SlugExists) (string, error) {
	base := Slugify(text)
	if base == "" {
		base = "untitled"
	}

	slug := base
	for i := 1; ; i++ {
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

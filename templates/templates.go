// Package templates embeds the HTML templates of the catalog page.
package templates

import (
	_ "embed"
	"html/template"
	"net/url"
	"strings"
)

//go:embed catalog.html
var catalogHTML string

// Catalog is the parsed catalog page template
var Catalog = template.Must(template.New("catalog").Funcs(template.FuncMap{
	"join":     func(list []string) string { return strings.Join(list, ",") },
	"imageURL": ImageURL,
}).Parse(catalogHTML))

// ImageURL returns the optimized image endpoint URL of an image reference
func ImageURL(ref string) string {
	if ref == "" {
		return ""
	}
	return "/images?size=medium&src=" + url.QueryEscape(ref)
}

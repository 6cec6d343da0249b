// Package template wraps a pongo2 template set loaded from an fs.FS behind
// the TemplateRenderer interface.
package template

// Package locales provides a small net/http handler that returns the locales
// a time picker can be configured with as JSON options.
//
// The handler responds to GET and HEAD requests and supports query and limit
// parameters to filter results. Values are wire tags (language or
// language-REGION) and labels are locale names, in the language of the
// request's Accept-Language header when the name is known, otherwise in the
// locale itself.
package locales

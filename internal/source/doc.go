// Package source talks to the manga reading site chapters are pulled from.
// It turns titles into URL slugs, fetches markup, checks that a
// title/chapter pair exists and extracts page and image URLs from the
// site's fixed page structure.
package source

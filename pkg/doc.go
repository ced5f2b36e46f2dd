// Package pkg provides the core libraries for boxwrap box art generation.
//
// # Overview
//
// Boxwrap turns the outer dimensions of a two-part board game box into
// print-ready artwork: an empty template sheet to paint on, and the two
// wrap images that cover the box halves. All geometry is computed in
// millimeters and rendered at 300 dpi. The pkg directory is organized
// into three main areas:
//
//  1. [geometry], [canvas], [template], [wrap] - Domain logic (layout math and rendering)
//  2. [cache], [host], [config] - Infrastructure (template caching, artifact publishing, settings)
//  3. [pipeline] - Orchestration (build → cache → publish)
//
// # Architecture
//
// The typical data flow through boxwrap:
//
//	Box dimensions (mm)
//	         ↓
//	    [geometry] package (panels, guides, tick marks in px)
//	         ↓
//	    [template] / [wrap] packages (draw onto a [canvas])
//	         ↓
//	    [pipeline] package (cache lookup, publish)
//	         ↓
//	    PNG + guide sidecar output
//
// # Quick Start
//
// Build a template and the wraps for a box:
//
//	import (
//	    "github.com/mwoelke/boxwrap/pkg/geometry"
//	    "github.com/mwoelke/boxwrap/pkg/template"
//	    "github.com/mwoelke/boxwrap/pkg/wrap"
//	)
//
//	// 1. Build the empty template for a 75x100x104 mm box
//	dims := geometry.Dimensions{Length: 75, Width: 100, Height: 104}
//	tmpl, _ := template.Build(dims)
//
//	// 2. Paint the faces in an image editor, then build both wraps
//	res, _ := wrap.Build(painted, dims, 2.0, geometry.DefaultParams())
//	top, bottom := res.Top, res.Bottom
//
// # Main Packages
//
// ## Domain Logic
//
// [geometry] - Pure layout math. Computes the template cross (six face
// panels with fold guides) and the two wrap layouts (face strip,
// flaps, thickness zones, inside allowance, cut and fold marks) from
// box dimensions. No drawing happens here.
//
// [canvas] - RGBA drawing surface with the primitives the builders
// need: filled and stroked rectangles, dashed lines, region copies,
// edge extension, and rotated text labels.
//
// [template] - Renders the empty template sheet from a layout.
//
// [wrap] - Cuts a painted template apart and assembles the top and
// bottom wrap images.
//
// ## Infrastructure
//
// [cache] - Content-addressed template cache keyed by a dimensions
// hash. File and Redis backends plus a fallback wrapper that degrades
// backend failures to cache misses.
//
// [host] - Publishes finished artifacts. DirHost writes PNG files
// with a JSON guide sidecar; MemoryHost backs tests and the HTTP
// server.
//
// [config] - boxwrap.toml loading with defaults.
//
// [units] - Millimeter to pixel conversion at the fixed 300 dpi print
// resolution.
//
// [errors] - Coded errors shared across packages, with user-facing
// messages.
//
// [observability] - Pluggable hook points for builds, cache access,
// and HTTP traffic.
//
// [buildinfo] - Version information injected at build time.
//
// ## Orchestration
//
// [pipeline] - The complete build pipeline (validate → build → cache →
// publish) used by both the CLI and the HTTP server, so all entry
// points behave the same.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/geometry/...   # Specific package
//
// [geometry]: https://pkg.go.dev/github.com/mwoelke/boxwrap/pkg/geometry
// [canvas]: https://pkg.go.dev/github.com/mwoelke/boxwrap/pkg/canvas
// [template]: https://pkg.go.dev/github.com/mwoelke/boxwrap/pkg/template
// [wrap]: https://pkg.go.dev/github.com/mwoelke/boxwrap/pkg/wrap
// [cache]: https://pkg.go.dev/github.com/mwoelke/boxwrap/pkg/cache
// [host]: https://pkg.go.dev/github.com/mwoelke/boxwrap/pkg/host
// [config]: https://pkg.go.dev/github.com/mwoelke/boxwrap/pkg/config
// [units]: https://pkg.go.dev/github.com/mwoelke/boxwrap/pkg/units
// [errors]: https://pkg.go.dev/github.com/mwoelke/boxwrap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/mwoelke/boxwrap/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/mwoelke/boxwrap/pkg/buildinfo
// [pipeline]: https://pkg.go.dev/github.com/mwoelke/boxwrap/pkg/pipeline
package pkg

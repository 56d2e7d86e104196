// Package textgrab fetches web pages and saves their article text as
// fixed-width plain text files, one per URL.
//
// Titles and text blocks are located with per-site XPath selector sets.
// Links inside a text block are kept inline as [href] markers placed right
// after the link text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., htmlquery/, sqlite/, yaml/).
package textgrab

// Package larder provides a recipe dataset toolkit.
// It validates locally supplied recipe collections, prefills new recipes
// from a pasted source URL using the page's structured data, and caches
// preview images next to the dataset so the browser never hot-links them.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, rod/).
package larder

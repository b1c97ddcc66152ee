// Package fragset provides a pipeline for collecting HTML page fragments
// from the web, classifying them against structured schemas (recipe, product,
// event, job posting, person, pricing table) or negative categories (error
// page, auth wall, empty SPA shell), curating them into a labeled golden
// dataset, and converting that dataset into chat-formatted training data for
// HTML-to-JSON extraction models.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., goquery/, sqlite/,
// classify/, crawl/).
package fragset

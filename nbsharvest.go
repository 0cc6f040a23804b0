// Package nbsharvest turns harvested Nature-Based Solutions case-study
// pages into a validated tabular dataset. It extracts visible text from
// saved HTML, asks an LLM for a fixed 13-field record per page, validates
// the reply against controlled vocabularies, and accumulates the results
// in a durable, de-duplicated store.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// goquery/, openai/).
package nbsharvest

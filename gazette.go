// Package gazette extracts article records from French-language news pages,
// normalizes them into a canonical schema and stores them keyed by URL.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, dateparser/).
package gazette

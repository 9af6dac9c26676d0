// Package domain models FARS traffic-fatality census data.
//
// # Data Source
//
// Rows come from the NHTSA Fatality Analysis Reporting System (FARS)
// yearly accident census, distributed as one comma-separated file per
// year compressed with bzip2 and named accident_<year>.csv.bz2. Each row
// is one fatal accident.
//
// # Encoding Conventions
//
// Columns used by this pipeline:
//
//	STATE     FIPS-style integer state code, e.g. 1 = Alabama, 48 = Texas.
//	          No enumeration is validated; a code is valid for a year when
//	          it appears in that year's data.
//	MONTH     Calendar month, 1-12.
//	LONGITUD  Decimal degrees. Spelled without the final E in the source
//	          headers; both spellings are accepted.
//	LATITUDE  Decimal degrees.
//
// Missing coordinates are encoded as out-of-range sentinels rather than
// empty fields: a longitude above 900 (e.g. 999.9999 = unknown) or a
// latitude above 90 (e.g. 99.9999) means "not reported". Rows carrying a
// sentinel in either coordinate are excluded from maps. Values at or
// below the bounds are taken as real positions.
//
// All remaining columns vary across census years and are carried in an
// open per-row bag without interpretation.
package domain

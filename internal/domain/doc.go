// Package domain models Météo-France coastal marine bulletins.
//
// # Data Source
//
// Bulletins are served by the Météo-France content cache behind
// rpcache-aa.meteofrance.com. Two report kinds exist per coastal zone:
//
//	BMS ("bulletin météo spécial", primary):   JSON, always fetched.
//	BMR ("bulletin météo régulier", secondary): XML, fetched on demand.
//
// Report domains are built from a region and a zone, both zero-padded to two
// digits: region 1 zone 4 -> "BMSCOTE-01-04".
//
// # Authentication
//
// The content cache expects a bearer token. The landing page answers with a
// Set-Cookie header carrying "mfsession=<value>;". The token is that value
// passed through ROT13 (see [DecodeSessionToken]). ROT13 is its own inverse.
//
// # Pretty Rendering
//
// BMR XML: the document is split on "<echeance" (one forecast period per
// section). Every CDATA block of a section is kept in order, one per line,
// and sections are separated by a blank line.
//
// BMS JSON: report_title, then the item titles of text_bloc_item[0], then the
// upper-cased bloc_title of text_bloc_item[1] followed by its item texts. Any
// missing field is a hard failure ([ErrMalformedContent]); upstream schema
// drift must not produce a silently truncated bulletin.
//
// # Artifact Names
//
//	raw:    BMS_zone4_2024_04_26_15_10.json   (minute precision)
//	pretty: BMS_pretty_zone4_2024_04_26_15.txt (hour precision)
//
// Pretty captures therefore collapse to one file per hour while raw captures
// are kept per minute. See [ArtifactName].
package domain

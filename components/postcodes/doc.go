// Package postcodes provides a deterministic postcode and locality table,
// search helpers, and a small net/http handler that returns JSON
// suggestions for address inputs.
//
// The default handler responds to GET and HEAD requests and supports
// query and limit parameters. Digit queries match postcodes, text
// queries match locality names; exact and prefix matches sort before
// substring matches. The backing data is the Australian-shaped sample
// table embedded under data/au_postcodes.txt.
package postcodes

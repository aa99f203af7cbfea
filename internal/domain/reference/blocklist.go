// Package reference holds the static lookup tables used by the cleaning
// transforms: the administrative-term blocklist and the country coordinate
// and name tables. All tables are built once at init and never mutated.
package reference

import "strings"

// adminTerms lists FAERS filing/administrative categories that appear in the
// reaction field but are not clinical symptoms. Left in, they dominate every
// drug's top-reaction list regardless of actual clinical signal.
// Versioned by hand; not derived from the data.
var adminTerms = []string{
	"DRUG INEFFECTIVE",
	"OFF LABEL USE",
	"PRODUCT USE IN UNAPPROVED INDICATION",
	"INAPPROPRIATE SCHEDULE OF PRODUCT ADMINISTRATION",
	"WRONG TECHNIQUE IN PRODUCT USAGE PROCESS",
	"DRUG ADMINISTERED TO PATIENT OF INAPPROPRIATE AGE",
	"DRUG DOSE OMISSION",
	"EXPIRED PRODUCT ADMINISTERED",
	"PRODUCT QUALITY ISSUE",
	"INTENTIONAL PRODUCT MISUSE",
	"DRUG DISPENSING ERROR",
	"DRUG INTERACTION",
	"NO ADVERSE EVENT",
	"PRODUCT SUBSTITUTION ISSUE",
	"DRUG ADMINISTRATION ERROR",
	"INCORRECT DOSE ADMINISTERED",
	"PATIENT DID NOT RESPOND TO TREATMENT",
	"CONDITION AGGRAVATED",
	"THERAPEUTIC RESPONSE UNEXPECTED",
	"DRUG USE FOR UNKNOWN INDICATION",
}

var blocklist = func() map[string]struct{} {
	m := make(map[string]struct{}, len(adminTerms))
	for _, t := range adminTerms {
		m[strings.ToUpper(t)] = struct{}{}
	}
	return m
}()

// IsAdministrative reports whether term is a known filing/administrative
// category. Matching is case-insensitive.
func IsAdministrative(term string) bool {
	_, ok := blocklist[strings.ToUpper(strings.TrimSpace(term))]
	return ok
}

// Blocklist returns a copy of the administrative-term set, uppercased.
func Blocklist() map[string]struct{} {
	out := make(map[string]struct{}, len(blocklist))
	for t := range blocklist {
		out[t] = struct{}{}
	}
	return out
}

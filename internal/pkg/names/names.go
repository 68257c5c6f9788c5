// Package names matches player names across data sources. The MLB feed
// uses "First Last", Statcast exports use "Last, First", and lineup
// scrapers sometimes carry nicknames or suffixes, so lookups that key on
// raw strings silently lose players. Person IDs are the primary key
// everywhere they exist; this package covers the boundaries that only
// publish names.
package names

import "strings"

var suffixes = []string{" jr.", " jr", " sr.", " sr", " ii", " iii", " iv"}

// Normalize lowercases a name, strips generational suffixes and folds a
// handful of common accented characters so "Ronald Acuña Jr." and
// "ronald acuna" compare equal.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ""
	}
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			s = strings.TrimSuffix(s, suf)
			break
		}
	}
	s = foldAccents(s)
	return strings.Join(strings.Fields(s), " ")
}

var accentFolder = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ä", "a", "ã", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "ö", "o", "õ", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ñ", "n", "ç", "c",
)

func foldAccents(s string) string {
	return accentFolder.Replace(s)
}

// nicknames maps common short forms to the formal first name. Both
// directions are tried during matching.
var nicknames = map[string]string{
	"mike": "michael", "nick": "nicholas", "rob": "robert",
	"alex": "alexander", "matt": "matthew", "chris": "christopher",
	"josh": "joshua", "jake": "jacob", "tony": "anthony",
}

// firstLast splits a candidate into (first, last), handling both
// "First Last" and "Last, First" forms. ok is false for single tokens.
func firstLast(name string) (first, last string, ok bool) {
	if i := strings.Index(name, ","); i >= 0 {
		last = strings.TrimSpace(name[:i])
		first = strings.TrimSpace(name[i+1:])
		if first == "" || last == "" {
			return "", "", false
		}
		// "Last Jr., First" keeps the suffix with the last name; drop it.
		if fields := strings.Fields(last); len(fields) > 1 {
			last = fields[0]
		}
		if fields := strings.Fields(first); len(fields) > 1 {
			first = fields[0]
		}
		return first, last, true
	}
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return "", "", false
	}
	return fields[0], fields[len(fields)-1], true
}

// Match finds the candidate that refers to the same player as search.
// Passes, in order: exact normalized match; first+last equality in either
// name order; first-initial with exact last name; nickname table with
// exact last name. The last name must match exactly in every pass — a
// shared first name never matches ("Aaron Judge" must not hit
// "Smith, Aaron"). Returns "" when nothing matches.
func Match(search string, candidates []string) string {
	searchNorm := Normalize(search)
	if searchNorm == "" || len(candidates) == 0 {
		return ""
	}

	for _, cand := range candidates {
		if Normalize(cand) == searchNorm {
			return cand
		}
	}

	sFirst, sLast, ok := firstLast(searchNorm)
	if !ok {
		return ""
	}

	// Full first + last equality, either ordering.
	for _, cand := range candidates {
		cFirst, cLast, ok := firstLast(Normalize(cand))
		if ok && cFirst == sFirst && cLast == sLast {
			return cand
		}
	}

	// First initial + exact last name.
	for _, cand := range candidates {
		cFirst, cLast, ok := firstLast(Normalize(cand))
		if ok && cFirst != "" && cFirst[0] == sFirst[0] && cLast == sLast {
			return cand
		}
	}

	// Nickname variants, both directions.
	sVariant := nicknames[sFirst]
	for _, cand := range candidates {
		cFirst, cLast, ok := firstLast(Normalize(cand))
		if !ok || cLast != sLast {
			continue
		}
		if cFirst == sVariant || nicknames[cFirst] == sFirst {
			return cand
		}
	}

	return ""
}

// ToStatcast converts "First Last" to the "Last, First" form used as the
// player key in Statcast exports. Generational suffixes stay with the
// last name: "Ronald Acuna Jr." -> "Acuna Jr., Ronald". Names that do not
// split cleanly are returned unchanged.
func ToStatcast(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	switch len(fields) {
	case 2:
		return fields[1] + ", " + fields[0]
	case 3:
		if isSuffix(fields[2]) {
			return fields[1] + " " + fields[2] + ", " + fields[0]
		}
	}
	return name
}

// FromStatcast converts "Last, First" back to "First Last".
func FromStatcast(name string) string {
	i := strings.Index(name, ",")
	if i < 0 {
		return name
	}
	last := strings.TrimSpace(name[:i])
	first := strings.TrimSpace(name[i+1:])
	if first == "" || last == "" {
		return name
	}
	return first + " " + last
}

func isSuffix(s string) bool {
	switch strings.TrimSuffix(strings.ToLower(s), ".") {
	case "jr", "sr", "ii", "iii", "iv":
		return true
	}
	return false
}

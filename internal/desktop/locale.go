package desktop

import "strings"

// LanguagesFromEnv returns the user's locale preferences, most preferred first.
// LANGUAGE (a colon-separated list) comes first, then the first set of
// LC_ALL, LC_MESSAGES and LANG. Encodings are stripped and the C/POSIX
// locales, which carry no translations, are dropped.
func LanguagesFromEnv(getenv func(string) string) []string {
	var raw []string
	if langs := getenv("LANGUAGE"); langs != "" {
		raw = append(raw, strings.Split(langs, ":")...)
	}
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := getenv(key); v != "" {
			raw = append(raw, v)
			break
		}
	}

	var out []string
	seen := make(map[string]bool)
	for _, loc := range raw {
		loc = stripEncoding(strings.TrimSpace(loc))
		if loc == "" || loc == "C" || loc == "POSIX" || seen[loc] {
			continue
		}
		seen[loc] = true
		out = append(out, loc)
	}
	return out
}

// stripEncoding removes ".UTF-8" from "de_DE.UTF-8@euro", keeping the modifier
func stripEncoding(loc string) string {
	dot := strings.IndexByte(loc, '.')
	if dot < 0 {
		return loc
	}
	rest := loc[dot:]
	if at := strings.IndexByte(rest, '@'); at >= 0 {
		return loc[:dot] + rest[at:]
	}
	return loc[:dot]
}

// localeCandidates lists the localized key suffixes to try for one locale,
// in the desktop entry matching order:
// lang_COUNTRY@MODIFIER, lang_COUNTRY, lang@MODIFIER, lang.
func localeCandidates(loc string) []string {
	loc = stripEncoding(loc)

	lang, modifier, _ := strings.Cut(loc, "@")
	lang, country, _ := strings.Cut(lang, "_")
	if lang == "" {
		return nil
	}

	var out []string
	if country != "" && modifier != "" {
		out = append(out, lang+"_"+country+"@"+modifier)
	}
	if country != "" {
		out = append(out, lang+"_"+country)
	}
	if modifier != "" {
		out = append(out, lang+"@"+modifier)
	}
	return append(out, lang)
}

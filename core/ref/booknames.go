package ref

import "strings"

// ordinals rewrites spelled and suffixed ordinals to digits, applied in order
// after case folding and separator removal ("1st Ne." -> "1ne").
var ordinals = strings.NewReplacer(
	"1st", "1", "first", "1",
	"2nd", "2", "second", "2",
	"3rd", "3", "third", "3",
	"4th", "4", "fourth", "4",
)

// bookKeys maps every processed abbreviation to its canonical book title.
// It is built once at package init and never written afterwards.
//
// The bare key "ne" resolves to "1 Nephi". An unnumbered "Ne" always means
// the first book of the series; this is fixed policy and not configurable.
var bookKeys = map[string]string{
	// Book of Mormon
	"1ne":           "1 Nephi",
	"1nephi":        "1 Nephi",
	"nephi1":        "1 Nephi",
	"2ne":           "2 Nephi",
	"2nephi":        "2 Nephi",
	"nephi2":        "2 Nephi",
	"3ne":           "3 Nephi",
	"3nephi":        "3 Nephi",
	"nephi3":        "3 Nephi",
	"4ne":           "4 Nephi",
	"4nephi":        "4 Nephi",
	"nephi4":        "4 Nephi",
	"jac":           "Jacob",
	"jacob":         "Jacob",
	"enos":          "Enos",
	"jar":           "Jarom",
	"jarom":         "Jarom",
	"omni":          "Omni",
	"wofm":          "Words of Mormon",
	"wordsofmormon": "Words of Mormon",
	"w of m":        "Words of Mormon",
	"mos":           "Mosiah",
	"mosiah":        "Mosiah",
	"alma":          "Alma",
	"hel":           "Helaman",
	"helaman":       "Helaman",
	"morm":          "Mormon",
	"mormon":        "Mormon",
	"eth":           "Ether",
	"ether":         "Ether",
	"moro":          "Moroni",
	"mor":           "Moroni",
	"mni":           "Moroni",
	"moroni":        "Moroni",
	"ne":            "1 Nephi",

	// Doctrine and Covenants
	"d&c":             "Doctrine and Covenants",
	"dc":              "Doctrine and Covenants",
	"section":         "Doctrine and Covenants",
	"od":              "Official Declaration",
	"od1":             "Official Declaration 1",
	"od2":             "Official Declaration 2",
	"lof":             "Lecture",
	"lecturesonfaith": "Lecture",
	"lecture":         "Lecture",
	"lec":             "Lecture",

	// Pearl of Great Price
	"moses":              "Moses",
	"abr":                "Abraham",
	"abraham":            "Abraham",
	"js-m":               "Joseph Smith--Matthew",
	"jsm":                "Joseph Smith--Matthew",
	"js-h":               "Joseph Smith--History",
	"jsh":                "Joseph Smith--History",
	"josephsmithhistory": "Joseph Smith--History",
	"js-hist":            "Joseph Smith--History",
	"josephsmithhist":    "Joseph Smith--History",
	"aoff":               "Articles of Faith",
	"a of f":             "Articles of Faith",
	"articlesoffaith":    "Articles of Faith",

	// Old Testament
	"gen":       "Genesis",
	"gn":        "Genesis",
	"ex":        "Exodus",
	"exod":      "Exodus",
	"lev":       "Leviticus",
	"lv":        "Leviticus",
	"num":       "Numbers",
	"nm":        "Numbers",
	"deut":      "Deuteronomy",
	"dt":        "Deuteronomy",
	"josh":      "Joshua",
	"judg":      "Judges",
	"jg":        "Judges",
	"ruth":      "Ruth",
	"1sam":      "1 Samuel",
	"1sm":       "1 Samuel",
	"2sam":      "2 Samuel",
	"2sm":       "2 Samuel",
	"1kgs":      "1 Kings",
	"1ki":       "1 Kings",
	"2kgs":      "2 Kings",
	"2ki":       "2 Kings",
	"1chr":      "1 Chronicles",
	"1ch":       "1 Chronicles",
	"2chr":      "2 Chronicles",
	"2ch":       "2 Chronicles",
	"ezra":      "Ezra",
	"neh":       "Nehemiah",
	"est":       "Esther",
	"esth":      "Esther",
	"job":       "Job",
	"ps":        "Psalms",
	"psa":       "Psalms",
	"pslm":      "Psalms",
	"psalms":    "Psalms",
	"prov":      "Proverbs",
	"pr":        "Proverbs",
	"eccl":      "Ecclesiastes",
	"ecc":       "Ecclesiastes",
	"song":      "Song of Solomon",
	"songofsol": "Song of Solomon",
	"sos":       "Song of Solomon",
	"isa":       "Isaiah",
	"is":        "Isaiah",
	"jer":       "Jeremiah",
	"jr":        "Jeremiah",
	"lam":       "Lamentations",
	"ezek":      "Ezekiel",
	"ez":        "Ezekiel",
	"dan":       "Daniel",
	"dn":        "Daniel",
	"hos":       "Hosea",
	"joel":      "Joel",
	"amos":      "Amos",
	"obad":      "Obadiah",
	"ob":        "Obadiah",
	"jonah":     "Jonah",
	"jon":       "Jonah",
	"mic":       "Micah",
	"nah":       "Nahum",
	"hab":       "Habakkuk",
	"zeph":      "Zephaniah",
	"hag":       "Haggai",
	"zech":      "Zechariah",
	"mal":       "Malachi",

	// New Testament
	"matt":   "Matthew",
	"mt":     "Matthew",
	"mark":   "Mark",
	"mk":     "Mark",
	"luke":   "Luke",
	"lk":     "Luke",
	"john":   "John",
	"jn":     "John",
	"acts":   "Acts",
	"rom":    "Romans",
	"1cor":   "1 Corinthians",
	"1co":    "1 Corinthians",
	"2cor":   "2 Corinthians",
	"2co":    "2 Corinthians",
	"gal":    "Galatians",
	"eph":    "Ephesians",
	"phil":   "Philippians",
	"php":    "Philippians",
	"col":    "Colossians",
	"1thes":  "1 Thessalonians",
	"1th":    "1 Thessalonians",
	"2thes":  "2 Thessalonians",
	"2th":    "2 Thessalonians",
	"1tim":   "1 Timothy",
	"1tm":    "1 Timothy",
	"2tim":   "2 Timothy",
	"2tm":    "2 Timothy",
	"titus":  "Titus",
	"philem": "Philemon",
	"phm":    "Philemon",
	"heb":    "Hebrews",
	"jas":    "James",
	"1pet":   "1 Peter",
	"1pt":    "1 Peter",
	"2pet":   "2 Peter",
	"2pt":    "2 Peter",
	"1john":  "1 John",
	"1jn":    "1 John",
	"2john":  "2 John",
	"2jn":    "2 John",
	"3john":  "3 John",
	"3jn":    "3 John",
	"jude":   "Jude",
	"rev":    "Revelation",
}

// Normalize maps a user-typed book token to its canonical title.
//
// Matching ignores case, periods, spaces, and ordinal spelling ("1st",
// "first"). The hyphenated (JS-M, JS-H), ampersand (D&C), and "of"-phrase
// (W of M, A of F) families are recognized on the raw token first, because
// generic processing would erase the separators they are keyed on.
//
// A token with no entry is returned unchanged so callers can still try it
// as a literal title.
func Normalize(raw string) string {
	if title, ok := bookKeys[processKey(raw)]; ok {
		return title
	}
	return raw
}

// Lookup is Normalize with an explicit hit flag.
func Lookup(raw string) (string, bool) {
	title, ok := bookKeys[processKey(raw)]
	return title, ok
}

func processKey(raw string) string {
	upper := strings.ToUpper(raw)
	switch {
	case upper == "D&C" || upper == "D. AND C.":
		return "d&c"
	case strings.Contains(upper, "JS-M"):
		return "js-m"
	case strings.Contains(upper, "JS-H"):
		return "js-h"
	case strings.Contains(upper, "W OF M"):
		return "w of m"
	case strings.Contains(upper, "A OF F"):
		return "a of f"
	}

	key := strings.ToLower(raw)
	key = strings.ReplaceAll(key, ".", "")
	key = strings.ReplaceAll(key, " ", "")
	return ordinals.Replace(key)
}

// Titles returns the distinct canonical titles known to the normalizer.
func Titles() []string {
	seen := make(map[string]bool, len(bookKeys))
	var out []string
	for _, title := range bookKeys {
		if !seen[title] {
			seen[title] = true
			out = append(out, title)
		}
	}
	return out
}

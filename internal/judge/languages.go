package judge

import (
	"strconv"
	"strings"
)

// Language is a Judge0 language the editor offers.
type Language struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"` // editor mode / file flavour
}

// Languages lists the supported languages in menu order.
var Languages = []Language{
	{ID: 63, Name: "JavaScript", Value: "javascript"},
	{ID: 71, Name: "Python", Value: "python"},
	{ID: 62, Name: "Java", Value: "java"},
	{ID: 54, Name: "C++", Value: "cpp"},
	{ID: 74, Name: "TypeScript", Value: "typescript"},
	{ID: 51, Name: "C#", Value: "csharp"},
	{ID: 60, Name: "Go", Value: "go"},
	{ID: 73, Name: "Rust", Value: "rust"},
	{ID: 72, Name: "Ruby", Value: "ruby"},
	{ID: 68, Name: "PHP", Value: "php"},
	{ID: 78, Name: "Kotlin", Value: "kotlin"},
	{ID: 83, Name: "Swift", Value: "swift"},
	{ID: 82, Name: "SQL", Value: "sql"},
	{ID: 50, Name: "C", Value: "c"},
	{ID: 70, Name: "Python 2", Value: "python"},
	{ID: 81, Name: "Scala", Value: "scala"},
	{ID: 67, Name: "Pascal", Value: "pascal"},
	{ID: 85, Name: "Perl", Value: "perl"},
	{ID: 64, Name: "Lua", Value: "lua"},
	{ID: 80, Name: "R", Value: "r"},
}

// DefaultLanguage is selected when none is given.
var DefaultLanguage = Languages[0]

// LookupLanguage finds a language by ID, name or value (case-insensitive).
func LookupLanguage(key string) (Language, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, l := range Languages {
		if strings.ToLower(l.Name) == k || l.Value == k {
			return l, true
		}
	}
	for _, l := range Languages {
		if strconv.Itoa(l.ID) == k {
			return l, true
		}
	}
	return Language{}, false
}

// LanguageByID finds a language by Judge0 ID.
func LanguageByID(id int) (Language, bool) {
	for _, l := range Languages {
		if l.ID == id {
			return l, true
		}
	}
	return Language{}, false
}

// NextLanguage returns the language after cur in menu order, wrapping.
func NextLanguage(cur Language) Language {
	for i, l := range Languages {
		if l.ID == cur.ID {
			return Languages[(i+1)%len(Languages)]
		}
	}
	return DefaultLanguage
}

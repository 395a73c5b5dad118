package analysis

import (
	"encoding/json"
	"time"
)

// Defaults used when the model reply is missing a field or unparseable.
// Kept for compatibility with existing journal data; they carry no deeper
// business meaning.
const (
	defaultProgress   = 50
	degradedTextLimit = 150
)

// Normalize coerces a raw model reply into an Analysis. The reply may wrap
// the JSON object in prose or markdown fencing, may omit fields, or may
// contain no JSON at all; Normalize never fails. The degraded tier packages
// a truncated copy of the raw text as the description.
func Normalize(raw, filename, model string, now time.Time) Analysis {
	a := Analysis{
		Dateiname:          filename,
		AnalyseDatum:       now,
		ErkannteElemente:   []string{},
		Sicherheitsrisiken: []string{},
		Empfehlungen:       []string{},
		NaechsteSchritte:   []string{},
		RoheAnalyse:        raw,
		AIModel:            model,
	}

	obj, ok := extractObject(raw)
	var fields map[string]json.RawMessage
	if !ok || json.Unmarshal([]byte(obj), &fields) != nil {
		a.FortschrittProzent = defaultProgress
		a.Status = StatusInArbeit
		a.Beschreibung = truncate(raw, degradedTextLimit)
		return a
	}

	a.FortschrittProzent = clampProgress(intField(fields, "fortschrittProzent", defaultProgress))
	a.Beschreibung = stringField(fields, "beschreibung", "Bildanalyse durch KI-Modell")
	a.ErkannteElemente = listField(fields, "erkannteElemente")
	a.Sicherheitsrisiken = listField(fields, "sicherheitsrisiken")
	a.Empfehlungen = listField(fields, "empfehlungen")
	a.NaechsteSchritte = listField(fields, "naechsteSchritte")

	// A model-supplied status is trusted as-is; otherwise derive it from
	// the progress thresholds.
	if st := stringField(fields, "status", ""); st != "" {
		a.Status = st
	} else {
		a.Status = StatusFor(a.FortschrittProzent)
	}
	return a
}

// extractObject returns the first balanced top-level {...} substring,
// skipping braces inside JSON string literals.
func extractObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

func intField(fields map[string]json.RawMessage, key string, def int) int {
	raw, ok := fields[key]
	if !ok {
		return def
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return def
	}
	return int(f)
}

func stringField(fields map[string]json.RawMessage, key, def string) string {
	raw, ok := fields[key]
	if !ok {
		return def
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return def
	}
	return s
}

func listField(fields map[string]json.RawMessage, key string) []string {
	raw, ok := fields[key]
	if !ok {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []string{}
	}
	return items
}

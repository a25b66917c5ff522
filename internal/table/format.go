package table

import (
	"strings"
	"unicode"
)

// BadgeVariant is the visual class of a status badge.
type BadgeVariant string

const (
	BadgePositive BadgeVariant = "positive"
	BadgeNeutral  BadgeVariant = "neutral"
	BadgeNegative BadgeVariant = "negative"
	BadgeDefault  BadgeVariant = "default"
)

var badgeVariants = map[string]BadgeVariant{
	"approved":    BadgePositive,
	"accepted":    BadgePositive,
	"completed":   BadgePositive,
	"pending":     BadgeNeutral,
	"in_progress": BadgeNeutral,
	"rejected":    BadgeNegative,
	"declined":    BadgeNegative,
	"cancelled":   BadgeNegative,
}

type Badge struct {
	Label   string       `json:"label"`
	Variant BadgeVariant `json:"variant"`
}

// BadgeFor classifies a status string.
func BadgeFor(status string) Badge {
	lower := strings.ToLower(status)
	variant, ok := badgeVariants[lower]
	if !ok {
		variant = BadgeDefault
	}
	return Badge{Label: strings.ReplaceAll(lower, "_", " "), Variant: variant}
}

// Cell is the display form of a value.
type Cell struct {
	Text  string `json:"text"`
	Badge *Badge `json:"badge,omitempty"`
}

func isStatusColumn(column string) bool {
	return strings.Contains(strings.ToLower(column), "status")
}

// FormatCell renders v as shown in column.
func FormatCell(v Value, column string) Cell {
	switch v.Kind() {
	case KindNull:
		return Cell{Text: "-"}
	case KindBool:
		if v.b {
			return Cell{Text: "Yes"}
		}
		return Cell{Text: "No"}
	case KindRecord:
		return Cell{Text: v.Record().JSON()}
	case KindArray:
		return Cell{Text: v.text}
	case KindString:
		if isStatusColumn(column) {
			b := BadgeFor(v.text)
			return Cell{Text: b.Label, Badge: &b}
		}
	}
	return Cell{Text: v.Text()}
}

// FormatHeader turns a column key into a title: camelCase words are split,
// the first letter is capitalized and the first dot becomes a space.
func FormatHeader(column string) string {
	var b strings.Builder
	for _, r := range column {
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := strings.TrimLeft(b.String(), " ")
	if out != "" {
		r := []rune(out)
		r[0] = unicode.ToUpper(r[0])
		out = string(r)
	}
	return strings.Replace(out, ".", " ", 1)
}

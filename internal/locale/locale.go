// Package locale resolves locale tags to wheel ordering and month names.
package locale

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/verte-zerg/datewheel/internal/calendar"
)

// Locale carries the date conventions the picker needs: the long-date pattern
// (which determines wheel ordering) and the month names.
type Locale struct {
	Tag     language.Tag
	pattern string
	months  [12]string
}

type entry struct {
	tag     string
	pattern string
	months  [12]string
}

// Long-date pattern skeletons per locale. The positions of the 'y', 'M' and
// 'd' runes decide the left-to-right wheel ordering.
var entries = []entry{
	{"en-US", "MMMM d, y", [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}},
	{"en-GB", "d MMMM y", [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}},
	{"de", "d. MMMM y", [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"}},
	{"fr", "d MMMM y", [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"}},
	{"es", "d 'de' MMMM 'de' y", [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}},
	{"it", "d MMMM y", [12]string{"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno", "luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"}},
	{"pt", "d 'de' MMMM 'de' y", [12]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"}},
	{"nl", "d MMMM y", [12]string{"januari", "februari", "maart", "april", "mei", "juni", "juli", "augustus", "september", "oktober", "november", "december"}},
	{"sv", "d MMMM y", [12]string{"januari", "februari", "mars", "april", "maj", "juni", "juli", "augusti", "september", "oktober", "november", "december"}},
	{"ru", "d MMMM y 'г'.", [12]string{"января", "февраля", "марта", "апреля", "мая", "июня", "июля", "августа", "сентября", "октября", "ноября", "декабря"}},
	{"ja", "y年M月d日", [12]string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"}},
	{"zh", "y年M月d日", [12]string{"一月", "二月", "三月", "四月", "五月", "六月", "七月", "八月", "九月", "十月", "十一月", "十二月"}},
	{"ko", "y년 M월 d일", [12]string{"1월", "2월", "3월", "4월", "5월", "6월", "7월", "8월", "9월", "10월", "11월", "12월"}},
}

var (
	supportedTags []language.Tag
	matcher       language.Matcher
)

func init() {
	supportedTags = make([]language.Tag, len(entries))
	for i, e := range entries {
		supportedTags[i] = language.MustParse(e.tag)
	}
	matcher = language.NewMatcher(supportedTags)
}

// Supported returns the supported locale tags in sorted order.
func Supported() []string {
	tags := make([]string, len(entries))
	for i, e := range entries {
		tags[i] = e.tag
	}
	sort.Strings(tags)
	return tags
}

// Resolve matches a BCP-47 tag against the supported locales. Unknown but
// well-formed tags fall back to the closest supported match.
func Resolve(tag string) (Locale, error) {
	parsed, err := language.Parse(tag)
	if err != nil {
		return Locale{}, fmt.Errorf("failed to parse locale %q: %w", tag, err)
	}
	_, index, _ := matcher.Match(parsed)
	e := entries[index]
	return Locale{Tag: supportedTags[index], pattern: e.pattern, months: e.months}, nil
}

// Order returns the locale's left-to-right wheel ordering, derived from the
// position of each component's representative rune in the long-date pattern.
func (l Locale) Order() [3]calendar.Kind {
	order := [3]calendar.Kind{calendar.Year, calendar.Month, calendar.Day}
	sort.SliceStable(order[:], func(i, j int) bool {
		return l.patternIndex(order[i]) < l.patternIndex(order[j])
	})
	return order
}

// MonthName returns the locale's name for month m (1-12).
func (l Locale) MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return l.months[m-1]
}

// String returns the canonical tag.
func (l Locale) String() string {
	return l.Tag.String()
}

func (l Locale) patternIndex(kind calendar.Kind) int {
	var marker rune
	switch kind {
	case calendar.Year:
		marker = 'y'
	case calendar.Month:
		marker = 'M'
	case calendar.Day:
		marker = 'd'
	}
	idx := strings.IndexRune(l.pattern, marker)
	if idx < 0 {
		return len(l.pattern)
	}
	return idx
}

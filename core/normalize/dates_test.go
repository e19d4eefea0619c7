package normalize

import (
	"fmt"
	"testing"
	"time"

	"github.com/gaurav-prasanna/flyerpipe/core"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	testCases := []struct {
		text string
		from string
		to   string
	}{
		{text: "22. 03. 2025 - 29. 03. 2025", from: "2025-03-22", to: "2025-03-29"},
		{text: "1.4.2025-7.4.2025", from: "2025-04-01", to: "2025-04-07"},
		{text: "  gültig 3.  9.  2024   –   14. 9. 2024 ", from: "2024-09-03", to: "2024-09-14"},
		{text: "von Montag 24. 03. 2025", from: "2025-03-24", to: core.Unknown},
		{text: "ab 24. 03. 2025 - bis auf Weiteres", from: "2025-03-24", to: core.Unknown},
		{text: "Nur diese Woche!", from: core.Unknown, to: core.Unknown},
		{text: "", from: core.Unknown, to: core.Unknown},
		{text: "31. 02. 2025 - 03. 03. 2025", from: core.Unknown, to: "2025-03-03"},
		{text: "28. 12. 2024 - 4. 1. 2025", from: "2024-12-28", to: "2025-01-04"},
		{text: "122. 03. 2025 - 29. 03. 2025", from: "2025-03-29", to: core.Unknown},
		{text: "22. 03. 20251", from: core.Unknown, to: core.Unknown},
		{text: "Nr. 4711. 03. 2025", from: core.Unknown, to: core.Unknown},
		{text: "22. 03. 2025 - 31. 02. 2025", from: "2025-03-22", to: core.Unknown},
	}

	for _, test := range testCases {
		from, to := ParseRange(test.text)
		require.Equal(t, test.from, from, "valid_from of %q", test.text)
		require.Equal(t, test.to, to, "valid_to of %q", test.text)
	}
}

func TestParseRangeAllDays(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	spacings := []string{"", " ", "  "}

	for i := 0; i < 366; i++ {
		from := start.AddDate(0, 0, i)
		to := from.AddDate(0, 0, 6)
		sp := spacings[i%len(spacings)]

		text := fmt.Sprintf("%s%d.%s%d.%s%d - %d.%s%02d.%s%d ",
			sp, from.Day(), sp, int(from.Month()), sp, from.Year(),
			to.Day(), sp, int(to.Month()), sp, to.Year())

		gotFrom, gotTo := ParseRange(text)
		require.Equal(t, from.Format(core.DateLayout), gotFrom, text)
		require.Equal(t, to.Format(core.DateLayout), gotTo, text)
	}
}

func TestImpossibleEndDateIsOpenEnded(t *testing.T) {
	from, to := ParseRange("22. 03. 2025 - 31. 02. 2025")
	f := core.Flyer{ShopName: "Lidl", ValidFrom: from, ValidTo: to}

	require.True(t, IsValid(f, time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC)))
	require.True(t, IsValid(f, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)))
	require.False(t, IsValid(f, time.Date(2025, time.March, 21, 0, 0, 0, 0, time.UTC)))
}

func TestIsValid(t *testing.T) {
	today := time.Date(2025, time.March, 25, 18, 30, 0, 0, time.Local)

	testCases := []struct {
		name     string
		from, to string
		expected bool
	}{
		{name: "inside", from: "2025-03-22", to: "2025-03-29", expected: true},
		{name: "first day", from: "2025-03-25", to: "2025-03-29", expected: true},
		{name: "last day", from: "2025-03-20", to: "2025-03-25", expected: true},
		{name: "expired", from: "2025-03-01", to: "2025-03-24", expected: false},
		{name: "upcoming", from: "2025-03-26", to: "2025-04-02", expected: false},
		{name: "open ended", from: "2025-03-01", to: core.Unknown, expected: true},
		{name: "open ended upcoming", from: "2025-04-01", to: core.Unknown, expected: false},
		{name: "unknown start", from: core.Unknown, to: "2025-03-29", expected: false},
		{name: "garbage start", from: "22.03.2025", to: "2025-03-29", expected: false},
		{name: "garbage end", from: "2025-03-22", to: "soon", expected: false},
		{name: "empty start", from: "", to: core.Unknown, expected: false},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			f := core.Flyer{ShopName: "Lidl", ValidFrom: test.from, ValidTo: test.to}
			require.Equal(t, test.expected, IsValid(f, today))
		})
	}
}

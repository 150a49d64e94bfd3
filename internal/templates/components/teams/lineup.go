package teams

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Lineup renders both squads side by side for the htmx balance panel.
func Lineup(data LineupData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.printf(`<section id="lineups" class="grid gap-4 md:grid-cols-2" data-rating-difference="%s">`, templ.EscapeString(data.RatingDifference))
		writeSquad(ew, data.TeamA)
		writeSquad(ew, data.TeamB)
		ew.printf(`<p class="text-sm text-muted md:col-span-2">Rating difference: <strong>%s</strong>`, templ.EscapeString(data.RatingDifference))
		if data.Seed != nil {
			ew.printf(` &middot; seed %s`, strconv.FormatUint(*data.Seed, 10))
		}
		ew.printf(`</p></section>`)
		return ew.err
	})
}

func writeSquad(ew *errWriter, squad SquadView) {
	ew.printf(`<article class="squad"><header><h3>%s</h3><span class="formation">%s</span><span class="average">%s avg</span><span class="total">%d total</span></header><ol>`,
		templ.EscapeString(squad.Label),
		templ.EscapeString(squad.Formation),
		templ.EscapeString(squad.AverageRating),
		squad.TotalRating,
	)
	for _, slot := range squad.Slots {
		class := "slot"
		if slot.OutOfPosition {
			class = "slot out-of-position"
		}
		ew.printf(`<li class="%s"><span class="position">%s</span> <span class="name">%s</span> <span class="rating">%d</span>`,
			class,
			templ.EscapeString(slot.Position),
			templ.EscapeString(slot.PlayerName),
			slot.Rating,
		)
		if slot.OutOfPosition {
			ew.printf(` <span class="native">(%s)</span>`, templ.EscapeString(slot.NativePos))
		}
		ew.printf(`</li>`)
	}
	ew.printf(`</ol></article>`)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

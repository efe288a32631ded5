// Package display renders decks, hands and search results for the terminal.
package display

import (
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/sevens-sim/sevens/cards"
	"github.com/sevens-sim/sevens/game"
)

// cardWidth is the printed width of one coloured card, e.g. " 10♥ ".
const cardWidth = 5

var suitStyles = [cards.NumSuits]*pterm.Style{
	pterm.NewStyle(pterm.FgRed, pterm.BgLightWhite),
	pterm.NewStyle(pterm.FgGreen, pterm.BgLightWhite),
	pterm.NewStyle(pterm.FgBlue, pterm.BgLightWhite),
	pterm.NewStyle(pterm.FgBlack, pterm.BgLightWhite),
}

type Printer struct {
	w       io.Writer
	numbers *message.Printer
	color   bool
	width   int
}

// NewPrinter writes to w. Counts are grouped according to locale; an
// unknown locale falls back to English. With color set, cards are coloured
// and wrapped to the terminal width.
func NewPrinter(w io.Writer, locale string, color bool) *Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := &Printer{
		w:       w,
		numbers: message.NewPrinter(tag),
		color:   color,
	}
	if color {
		p.width = pterm.GetTerminalWidth()
	}
	return p
}

// Count formats n with locale digit grouping.
func (p *Printer) Count(n uint64) string {
	return p.numbers.Sprintf("%d", n)
}

func (p *Printer) Percent(f float64) string {
	return p.numbers.Sprintf("%.1f%%", f)
}

// Cards prints a title followed by the cards on one or more lines.
func (p *Printer) Cards(title string, cs iter.Seq[cards.Card]) {
	titleLen := utf8.RuneCountInString(title)
	if !p.color || p.width <= titleLen+1+cardWidth {
		var sb strings.Builder
		sb.WriteString(title)
		for c := range cs {
			sb.WriteString(" " + c.String())
		}
		fmt.Fprintln(p.w, sb.String())
		return
	}

	fmt.Fprint(p.w, title)
	cur := titleLen
	for c := range cs {
		if cur+1+cardWidth > p.width {
			fmt.Fprintln(p.w)
			fmt.Fprint(p.w, strings.Repeat(" ", titleLen))
			cur = titleLen
		}
		fmt.Fprint(p.w, " "+suitStyles[c.Suit()].Sprintf(" %-2s%s ", c.Rank(), c.Suit()))
		cur += 1 + cardWidth
	}
	fmt.Fprintln(p.w)
}

// Deck prints the deck order and its hash.
func (p *Printer) Deck(d *cards.Deck) {
	p.Cards("Card deck:", func(yield func(cards.Card) bool) {
		for _, c := range d.Cards() {
			if !yield(c) {
				return
			}
		}
	})
	fmt.Fprintf(p.w, "Deck hash: %s\n", d.Hash())
}

// Hands prints every player's hand.
func (p *Printer) Hands(st *game.State) {
	fmt.Fprintln(p.w, "Player cards:")
	width := len(fmt.Sprint(st.NumPlayers()))
	for i := range st.NumPlayers() {
		p.Cards(fmt.Sprintf("  Player %*d:", width, i+1), st.Hand(i).All())
	}
}

// Results prints games played, wins per player and the play preference
// statistics.
func (p *Printer) Results(res *game.Results, st game.Strategy) error {
	fmt.Fprintf(p.w, "Games finished: %s\n", p.Count(res.Games()))

	wins := pterm.TableData{{"Player", "Wins", "%"}}
	for i, w := range res.Wins() {
		wins = append(wins, []string{
			fmt.Sprint(i + 1), p.Count(w), p.Percent(res.WinPercentage(i)),
		})
	}
	if err := p.table(wins); err != nil {
		return err
	}

	ranks := lo.Range(st.MaxPrefRank() + 1)
	header := []string{"Player"}
	for _, r := range ranks {
		desc := st.PrefRankDesc(r)
		header = append(header, desc+" (1)", desc+" (n)")
	}
	header = append(header, "No play")
	prefs := pterm.TableData{header}
	for i := range res.NumPlayers() {
		pr := res.Player(i)
		row := []string{fmt.Sprint(i + 1)}
		for _, r := range ranks {
			row = append(row, p.Count(pr.Single[r]), p.Count(pr.Multi[r]))
		}
		row = append(row, p.Count(pr.Misses))
		prefs = append(prefs, row)
	}
	fmt.Fprintln(p.w, "Play preferences:")
	return p.table(prefs)
}

func (p *Printer) table(data pterm.TableData) error {
	tp := pterm.DefaultTable.WithHasHeader().WithRightAlignment().WithData(data)
	if !p.color {
		tp = tp.WithHeaderStyle(pterm.NewStyle()).WithSeparatorStyle(pterm.NewStyle())
	}
	s, err := tp.Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(p.w, s)
	return nil
}

// WinsSummary is a one-line summary such as "1: 3 (75.0%), 2: 1 (25.0%)".
func (p *Printer) WinsSummary(res *game.Results) string {
	parts := lo.Map(res.Wins(), func(w uint64, i int) string {
		return fmt.Sprintf("%d: %s (%s)", i+1, p.Count(w), p.Percent(res.WinPercentage(i)))
	})
	return strings.Join(parts, ", ")
}

// YAML writes res as a YAML document.
func YAML(w io.Writer, res *game.Results) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return err
	}
	return enc.Close()
}

package players

import (
	"fmt"
	"io"
	"strings"

	"github.com/minaorangina/doomlings/deck"
	"github.com/minaorangina/doomlings/game"
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

// DisplayView writes v as the player would read it at the table.
func DisplayView(w io.Writer, v game.PlayerView) {
	SendText(w, "%s", buildViewText(v))
}

// DisplayScores writes every seat's final score and the winners.
func DisplayScores(w io.Writer, v game.View) {
	SendText(w, "%s", buildScoresText(v))
}

func buildViewText(v game.PlayerView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Round %d, catastrophes %d, phase %s\n", v.Round, v.CatastropheCount, v.Phase)
	if v.CurrentAge != nil {
		fmt.Fprintf(&b, "Age: %s\n", v.CurrentAge.Name)
	}
	for _, s := range v.Players {
		marker := " "
		if s.IsCurrentPlayer {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %s: %d point(s), gene pool %d, %d card(s) in hand\n", marker, s.Name, s.Score, s.GenePool, s.HandSize)
		b.WriteString(cardList("    ", s.TraitPile))
	}
	b.WriteString("Your hand:\n")
	b.WriteString(cardList("  ", v.MyHand))
	if v.Pending != nil {
		fmt.Fprintf(&b, "Waiting on you: %s\n", v.Pending.Message)
	}
	return b.String()
}

func buildScoresText(v game.View) string {
	var b strings.Builder
	for _, s := range v.Players {
		fmt.Fprintf(&b, "%s: %d\n", s.Name, s.Score)
	}
	names := []string{}
	for _, id := range v.Winners {
		for _, s := range v.Players {
			if s.ID == id {
				names = append(names, s.Name)
			}
		}
	}
	if len(names) > 0 {
		fmt.Fprintf(&b, "Winner(s): %s\n", strings.Join(names, ", "))
	}
	return b.String()
}

func cardList(indent string, cards []deck.Card) string {
	text := ""
	for _, c := range cards {
		text += indent + "- " + c.String() + "\n"
	}
	return text
}

package view

import (
	"fmt"
	"strings"

	"github.com/jask/tripboard/internal/render"
	"github.com/jask/tripboard/internal/store"
)

// InfoView is the trip banner: route, date span and total cost.
type InfoView struct {
	render.Element

	summary store.Summary
	format  Format
}

func NewInfoView(summary store.Summary, format Format) *InfoView {
	return &InfoView{summary: summary, format: format}
}

// Update swaps in a fresh summary.
func (v *InfoView) Update(summary store.Summary) { v.summary = summary }

// Route joins destination names, collapsing the middle beyond three stops.
func Route(names []string) string {
	if len(names) > 3 {
		names = []string{names[0], "...", names[len(names)-1]}
	}
	return strings.Join(names, " — ")
}

func (v *InfoView) View() string {
	s := v.summary
	if len(s.Route) == 0 {
		return infoStyle.Render(mutedStyle.Render("Click n to create your first point"))
	}
	dates := fmt.Sprintf("%s — %s", strings.ToUpper(v.format.Day(s.From)), strings.ToUpper(v.format.Day(s.To)))
	body := routeStyle.Render(Route(s.Route)) + "\n" +
		mutedStyle.Render(dates) + "   Total: " + priceStyle.Render(v.format.Money(s.Total))
	return infoStyle.Render(body)
}

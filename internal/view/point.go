package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tripboard/internal/database/repository"
	"github.com/jask/tripboard/internal/render"
)

// PointKeyMap holds the display row bindings.
type PointKeyMap struct {
	Edit     key.Binding
	Favorite key.Binding
}

func DefaultPointKeyMap() PointKeyMap {
	return PointKeyMap{
		Edit:     key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
	}
}

// PointViewParams configures a display row.
type PointViewParams struct {
	Point           repository.TripPoint
	Destination     repository.Destination
	Offers          []repository.Offer
	Format          Format
	OnEditClick     func()
	OnFavoriteClick func() error
}

// PointView is the read-only row for one point.
type PointView struct {
	render.Element

	point       repository.TripPoint
	destination repository.Destination
	offers      []repository.Offer
	format      Format
	keys        PointKeyMap

	onEditClick     func()
	onFavoriteClick func() error
}

func NewPointView(p PointViewParams) *PointView {
	return &PointView{
		point:           p.Point.Clone(),
		destination:     p.Destination,
		offers:          p.Offers,
		format:          p.Format,
		keys:            DefaultPointKeyMap(),
		onEditClick:     p.OnEditClick,
		onFavoriteClick: p.OnFavoriteClick,
	}
}

// Point is the point the row was built from.
func (v *PointView) Point() repository.TripPoint { return v.point.Clone() }

// Keys exposes the bindings for help rendering.
func (v *PointView) Keys() PointKeyMap { return v.keys }

// HandleKey reacts to edit and favorite presses.
func (v *PointView) HandleKey(msg tea.KeyMsg) (bool, error) {
	switch {
	case key.Matches(msg, v.keys.Edit):
		if v.onEditClick != nil {
			v.onEditClick()
		}
		return true, nil
	case key.Matches(msg, v.keys.Favorite):
		if v.onFavoriteClick != nil {
			return true, v.onFavoriteClick()
		}
		return true, nil
	}
	return false, nil
}

func (v *PointView) View() string {
	p := v.point
	star := mutedStyle.Render("☆")
	if p.IsFavorite {
		star = favoriteStyle.Render("★")
	}
	schedule := fmt.Sprintf("%s — %s", v.format.Clock(p.DateFrom), v.format.Clock(p.DateTo))
	head := lipgloss.JoinHorizontal(lipgloss.Top,
		dateStyle.Render(strings.ToUpper(v.format.Day(p.DateFrom))),
		typeStyle.Render(p.Type),
		titleStyle.Render(v.destination.Name),
		"  ",
		scheduleStyle.Render(schedule),
		"  ",
		durationStyle.Render(Duration(p.Duration())),
		"  ",
		priceStyle.Render(v.format.Money(p.BasePrice)),
		"  ",
		star,
	)
	if len(v.offers) == 0 {
		return head
	}
	parts := make([]string, 0, len(v.offers))
	for _, o := range v.offers {
		parts = append(parts, fmt.Sprintf("+ %s %s", o.Title, v.format.Money(o.Price)))
	}
	return head + "\n" + offerStyle.Render(strings.Join(parts, "  "))
}

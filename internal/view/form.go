package view

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tripboard/internal/database/repository"
	"github.com/jask/tripboard/internal/errors"
	"github.com/jask/tripboard/internal/render"
)

// FormKeyMap holds the edit form bindings.
type FormKeyMap struct {
	Submit    key.Binding
	Close     key.Binding
	Delete    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Left      key.Binding
	Right     key.Binding
	Toggle    key.Binding
}

func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Close:     key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "close")),
		Delete:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "choose")),
		Right:     key.NewBinding(key.WithKeys("right")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle offer")),
	}
}

type formField int

const (
	fieldType formField = iota
	fieldDestination
	fieldDateFrom
	fieldDateTo
	fieldPrice
	fieldOffers
	fieldCount
)

var fieldLabels = [fieldCount]string{"Type", "Destination", "From", "To", "Price", "Offers"}

// FormEditViewParams configures an edit form.
type FormEditViewParams struct {
	Point         repository.TripPoint
	Destination   repository.Destination
	CheckedOffers []repository.Offer
	Offers        []repository.Offer
	Destinations  []repository.Destination
	Catalog       Catalog
	Format        Format
	OnFormSubmit  func(repository.TripPoint) error
	OnCloseClick  func()
	OnDeleteClick func() error
}

// FormEditView is the inline edit form for one point.
type FormEditView struct {
	render.Element

	point        repository.TripPoint
	catalog      Catalog
	format       Format
	keys         FormKeyMap
	types        []string
	destinations []repository.Destination

	typeIndex   int
	offers      []repository.Offer
	checked     map[string]bool
	destination textinput.Model
	dateFrom    textinput.Model
	dateTo      textinput.Model
	price       textinput.Model
	focus       formField
	offerCursor int
	err         error

	onFormSubmit  func(repository.TripPoint) error
	onCloseClick  func()
	onDeleteClick func() error
}

func NewFormEditView(p FormEditViewParams) *FormEditView {
	v := &FormEditView{
		catalog:       p.Catalog,
		format:        p.Format,
		keys:          DefaultFormKeyMap(),
		types:         repository.PointTypes,
		destinations:  p.Destinations,
		destination:   newInput("Amsterdam"),
		dateFrom:      newInput(p.Format.DateLayout),
		dateTo:        newInput(p.Format.DateLayout),
		price:         newInput("0"),
		onFormSubmit:  p.OnFormSubmit,
		onCloseClick:  p.OnCloseClick,
		onDeleteClick: p.OnDeleteClick,
	}
	if p.Catalog != nil {
		v.types = p.Catalog.PointTypes()
	}
	v.fill(p.Point, p.Destination.Name, p.Offers, p.CheckedOffers)
	v.setFocus(fieldDestination)
	return v
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 64
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

// Reset reverts every field to point, dropping unsaved edits and any error.
func (v *FormEditView) Reset(point repository.TripPoint) {
	name := ""
	var checked []repository.Offer
	var offers []repository.Offer
	if v.catalog != nil {
		if d, err := v.catalog.DestinationByID(point.DestinationID); err == nil {
			name = d.Name
		}
		offers = v.catalog.OffersByType(point.Type)
		checked, _ = v.catalog.OffersByID(point.Type, point.OfferIDs)
	}
	v.fill(point, name, offers, checked)
	v.setFocus(fieldDestination)
}

func (v *FormEditView) fill(point repository.TripPoint, destination string, offers, checked []repository.Offer) {
	v.point = point.Clone()
	v.typeIndex = max(slices.Index(v.types, point.Type), 0)
	v.offers = offers
	v.checked = make(map[string]bool, len(checked))
	for _, o := range checked {
		v.checked[o.ID] = true
	}
	v.offerCursor = 0
	v.destination.SetValue(destination)
	v.dateFrom.SetValue(v.format.Input(point.DateFrom))
	v.dateTo.SetValue(v.format.Input(point.DateTo))
	v.price.SetValue(strconv.FormatInt(point.BasePrice, 10))
	v.err = nil
}

// Err is the last submit error shown under the form.
func (v *FormEditView) Err() error { return v.err }

// Keys exposes the bindings for help rendering.
func (v *FormEditView) Keys() FormKeyMap { return v.keys }

// Candidate builds the point the form currently describes.
func (v *FormEditView) Candidate() (repository.TripPoint, error) {
	c := v.point.Clone()
	c.Type = v.types[v.typeIndex]

	if v.catalog != nil {
		d, err := v.catalog.ResolveDestination(v.destination.Value())
		if err != nil {
			return repository.TripPoint{}, err
		}
		c.DestinationID = d.ID
	}

	from, err := v.format.ParseInput(strings.TrimSpace(v.dateFrom.Value()))
	if err != nil {
		return repository.TripPoint{}, errors.InvalidInput("start date", err)
	}
	to, err := v.format.ParseInput(strings.TrimSpace(v.dateTo.Value()))
	if err != nil {
		return repository.TripPoint{}, errors.InvalidInput("end date", err)
	}
	c.DateFrom, c.DateTo = from.UTC(), to.UTC()

	price, err := strconv.ParseInt(strings.TrimSpace(v.price.Value()), 10, 64)
	if err != nil {
		return repository.TripPoint{}, errors.InvalidInput("price", err)
	}
	c.BasePrice = price

	c.OfferIDs = nil
	for _, o := range v.offers {
		if v.checked[o.ID] {
			c.OfferIDs = append(c.OfferIDs, o.ID)
		}
	}
	return c, nil
}

// HandleKey edits the focused field or fires submit, close and delete.
func (v *FormEditView) HandleKey(msg tea.KeyMsg) (bool, error) {
	switch {
	case key.Matches(msg, v.keys.Submit):
		return true, v.submit()
	case key.Matches(msg, v.keys.Close):
		if v.onCloseClick != nil {
			v.onCloseClick()
		}
		return true, nil
	case key.Matches(msg, v.keys.Delete):
		if v.onDeleteClick != nil {
			v.err = v.onDeleteClick()
			return true, v.err
		}
		return true, nil
	case key.Matches(msg, v.keys.NextField):
		v.setFocus((v.focus + 1) % fieldCount)
		return true, nil
	case key.Matches(msg, v.keys.PrevField):
		v.setFocus((v.focus + fieldCount - 1) % fieldCount)
		return true, nil
	}

	switch v.focus {
	case fieldType:
		switch {
		case key.Matches(msg, v.keys.Left):
			v.selectType(v.typeIndex - 1)
		case key.Matches(msg, v.keys.Right):
			v.selectType(v.typeIndex + 1)
		}
		return true, nil
	case fieldOffers:
		switch {
		case key.Matches(msg, v.keys.Left):
			v.offerCursor = max(v.offerCursor-1, 0)
		case key.Matches(msg, v.keys.Right):
			v.offerCursor = min(v.offerCursor+1, max(len(v.offers)-1, 0))
		case key.Matches(msg, v.keys.Toggle):
			if len(v.offers) > 0 {
				id := v.offers[v.offerCursor].ID
				v.checked[id] = !v.checked[id]
			}
		}
		return true, nil
	}

	if in := v.input(v.focus); in != nil {
		*in, _ = in.Update(msg)
	}
	return true, nil
}

// SetField replaces the text of an input field; used by tests and paste.
func (v *FormEditView) SetField(label, value string) bool {
	for f := formField(0); f < fieldCount; f++ {
		if strings.EqualFold(fieldLabels[f], label) {
			if in := v.input(f); in != nil {
				in.SetValue(value)
				return true
			}
		}
	}
	return false
}

func (v *FormEditView) submit() error {
	c, err := v.Candidate()
	if err != nil {
		v.err = err
		return err
	}
	if v.onFormSubmit == nil {
		return nil
	}
	if err := v.onFormSubmit(c); err != nil {
		v.err = err
		return err
	}
	v.err = nil
	return nil
}

func (v *FormEditView) selectType(i int) {
	n := len(v.types)
	if n == 0 {
		return
	}
	i = (i%n + n) % n
	if i == v.typeIndex {
		return
	}
	v.typeIndex = i
	v.offers = nil
	if v.catalog != nil {
		v.offers = v.catalog.OffersByType(v.types[i])
	}
	v.checked = map[string]bool{}
	v.offerCursor = 0
}

func (v *FormEditView) input(f formField) *textinput.Model {
	switch f {
	case fieldDestination:
		return &v.destination
	case fieldDateFrom:
		return &v.dateFrom
	case fieldDateTo:
		return &v.dateTo
	case fieldPrice:
		return &v.price
	}
	return nil
}

func (v *FormEditView) setFocus(f formField) {
	if in := v.input(v.focus); in != nil {
		in.Blur()
	}
	v.focus = f
	if in := v.input(f); in != nil {
		in.Focus()
	}
}

func (v *FormEditView) View() string {
	var b strings.Builder
	for f := formField(0); f < fieldCount; f++ {
		label := labelStyle
		if f == v.focus {
			label = focusLabelStyle
		}
		b.WriteString(label.Render(fieldLabels[f]))
		b.WriteString(v.fieldView(f))
		b.WriteString("\n")
	}
	if d, err := v.destinationByName(); err == nil && d.Description != "" {
		b.WriteString(mutedStyle.Render(d.Description))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(errorStyle.Render(v.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter save · ctrl+x close · esc cancel · ctrl+d delete · tab next field"))
	return formStyle.Render(b.String())
}

func (v *FormEditView) fieldView(f formField) string {
	switch f {
	case fieldType:
		return fmt.Sprintf("‹ %s ›", v.types[v.typeIndex])
	case fieldPrice:
		return v.format.Currency + " " + v.price.View()
	case fieldOffers:
		if len(v.offers) == 0 {
			return mutedStyle.Render("none for this type")
		}
		parts := make([]string, 0, len(v.offers))
		for i, o := range v.offers {
			box := "[ ]"
			if v.checked[o.ID] {
				box = checkedStyle.Render("[x]")
			}
			item := fmt.Sprintf("%s %s +%s", box, o.Title, v.format.Money(o.Price))
			if f == v.focus && i == v.offerCursor {
				item = offerCursorStyle.Render(item)
			}
			parts = append(parts, item)
		}
		return strings.Join(parts, "  ")
	}
	return v.input(f).View()
}

func (v *FormEditView) destinationByName() (repository.Destination, error) {
	name := strings.TrimSpace(v.destination.Value())
	for _, d := range v.destinations {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return repository.Destination{}, errors.NotFound("destination", name)
}

package view

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/tripboard/internal/database/repository"
	"github.com/jask/tripboard/internal/errors"
	"github.com/jask/tripboard/internal/render"
	"github.com/jask/tripboard/internal/store"
)

var (
	_ render.Component = (*PointView)(nil)
	_ render.Component = (*FormEditView)(nil)
	_ render.Component = (*InfoView)(nil)
)

type fakeCatalog struct {
	dests  []repository.Destination
	offers []repository.Offer
}

func (c fakeCatalog) DestinationByID(id string) (repository.Destination, error) {
	for _, d := range c.dests {
		if d.ID == id {
			return d, nil
		}
	}
	return repository.Destination{}, errors.StaleReference("destination", id)
}

func (c fakeCatalog) OffersByID(pointType string, ids []string) ([]repository.Offer, error) {
	var out []repository.Offer
	for _, id := range ids {
		found := false
		for _, o := range c.offers {
			if o.ID == id && o.Type == pointType {
				out = append(out, o)
				found = true
			}
		}
		if !found {
			return nil, errors.StaleReference("offer", id)
		}
	}
	return out, nil
}

func (c fakeCatalog) OffersByType(pointType string) []repository.Offer {
	var out []repository.Offer
	for _, o := range c.offers {
		if o.Type == pointType {
			out = append(out, o)
		}
	}
	return out
}

func (c fakeCatalog) Destinations() []repository.Destination { return c.dests }

func (c fakeCatalog) ResolveDestination(name string) (repository.Destination, error) {
	for _, d := range c.dests {
		if strings.EqualFold(d.Name, strings.TrimSpace(name)) {
			return d, nil
		}
	}
	return repository.Destination{}, errors.Validation("destination", "unknown")
}

func (c fakeCatalog) PointTypes() []string { return repository.PointTypes }

var testCatalog = fakeCatalog{
	dests: []repository.Destination{
		{ID: "d-ams", Name: "Amsterdam", Description: "Canals"},
		{ID: "d-gva", Name: "Geneva"},
	},
	offers: []repository.Offer{
		{ID: "o-lug", Type: repository.TypeFlight, Title: "Add luggage", Price: 50},
		{ID: "o-meal", Type: repository.TypeFlight, Title: "Add meal", Price: 15},
		{ID: "o-seat", Type: repository.TypeBus, Title: "Choose seats", Price: 10},
	},
}

func testFormat() Format {
	return Format{DateLayout: "02/01/06 15:04", Currency: "€", Location: time.UTC}
}

func testPoint() repository.TripPoint {
	from := time.Date(2026, 3, 18, 10, 30, 0, 0, time.UTC)
	return repository.TripPoint{
		ID:            "p-1",
		Type:          repository.TypeFlight,
		DestinationID: "d-ams",
		DateFrom:      from,
		DateTo:        from.Add(95 * time.Minute),
		BasePrice:     160,
		OfferIDs:      []string{"o-lug"},
	}
}

func newTestForm(submit func(repository.TripPoint) error) *FormEditView {
	p := testPoint()
	return NewFormEditView(FormEditViewParams{
		Point:         p,
		Destination:   testCatalog.dests[0],
		CheckedOffers: testCatalog.offers[:1],
		Offers:        testCatalog.OffersByType(p.Type),
		Destinations:  testCatalog.dests,
		Catalog:       testCatalog,
		Format:        testFormat(),
		OnFormSubmit:  submit,
	})
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "30M", Duration(30*time.Minute))
	assert.Equal(t, "01H 35M", Duration(95*time.Minute))
	assert.Equal(t, "02D 01H 00M", Duration(49*time.Hour))
	assert.Equal(t, "00M", Duration(-time.Hour))
}

func TestRoute(t *testing.T) {
	assert.Equal(t, "", Route(nil))
	assert.Equal(t, "A — B — C", Route([]string{"A", "B", "C"}))
	assert.Equal(t, "A — ... — D", Route([]string{"A", "B", "C", "D"}))
}

func TestPointViewKeys(t *testing.T) {
	edits, favs := 0, 0
	v := NewPointView(PointViewParams{
		Point:           testPoint(),
		Destination:     testCatalog.dests[0],
		Offers:          testCatalog.offers[:1],
		Format:          testFormat(),
		OnEditClick:     func() { edits++ },
		OnFavoriteClick: func() error { favs++; return nil },
	})

	handled, err := v.HandleKey(press("enter"))
	require.NoError(t, err)
	assert.True(t, handled)
	_, _ = v.HandleKey(press("f"))
	handled, _ = v.HandleKey(press("z"))
	assert.False(t, handled)
	assert.Equal(t, 1, edits)
	assert.Equal(t, 1, favs)

	out := v.View()
	assert.Contains(t, out, "Amsterdam")
	assert.Contains(t, out, "10:30 — 12:05")
	assert.Contains(t, out, "01H 35M")
	assert.Contains(t, out, "€160")
	assert.Contains(t, out, "Add luggage")
}

func TestFormCandidateMatchesPoint(t *testing.T) {
	f := newTestForm(nil)
	c, err := f.Candidate()
	require.NoError(t, err)
	assert.True(t, testPoint().Equal(c), "got %+v", c)
}

func TestFormSubmitEditedFields(t *testing.T) {
	var got []repository.TripPoint
	f := newTestForm(func(p repository.TripPoint) error {
		got = append(got, p)
		return nil
	})

	require.True(t, f.SetField("destination", "geneva"))
	require.True(t, f.SetField("price", "210"))
	// move to offers and tick the second one
	for i := 0; i < 4; i++ {
		_, _ = f.HandleKey(press("tab"))
	}
	_, _ = f.HandleKey(press("right"))
	_, _ = f.HandleKey(press("space"))

	_, err := f.HandleKey(press("enter"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d-gva", got[0].DestinationID)
	assert.Equal(t, int64(210), got[0].BasePrice)
	assert.Equal(t, []string{"o-lug", "o-meal"}, got[0].OfferIDs)
	assert.Equal(t, "p-1", got[0].ID)
}

func TestFormInvalidInputDoesNotSubmit(t *testing.T) {
	calls := 0
	f := newTestForm(func(repository.TripPoint) error { calls++; return nil })
	f.SetField("price", "cheap")

	_, err := f.HandleKey(press("enter"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	assert.Zero(t, calls)
	assert.Contains(t, f.View(), "invalid price")
}

func TestFormResetDropsEdits(t *testing.T) {
	f := newTestForm(nil)
	f.SetField("destination", "Geneva")
	f.SetField("from", "garbage")
	_, _ = f.HandleKey(press("tab")) // leave destination, focus From

	f.Reset(testPoint())
	c, err := f.Candidate()
	require.NoError(t, err)
	assert.True(t, testPoint().Equal(c))
	assert.NoError(t, f.Err())
}

func TestFormTypeChangeClearsOffers(t *testing.T) {
	f := newTestForm(nil)
	_, _ = f.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab}) // destination -> type
	// flight -> check-in
	_, _ = f.HandleKey(press("right"))

	c, err := f.Candidate()
	require.NoError(t, err)
	assert.Equal(t, repository.TypeCheckIn, c.Type)
	assert.Empty(t, c.OfferIDs)
}

func TestFormCloseCallback(t *testing.T) {
	closed := 0
	f := newTestForm(nil)
	f.onCloseClick = func() { closed++ }
	handled, err := f.HandleKey(press("ctrl+x"))
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, 1, closed)
}

func TestInfoView(t *testing.T) {
	from := time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC)
	v := NewInfoView(store.Summary{
		Route: []string{"Amsterdam", "Geneva"},
		From:  from,
		To:    from.Add(48 * time.Hour),
		Total: 1100,
	}, testFormat())
	out := v.View()
	assert.Contains(t, out, "Amsterdam — Geneva")
	assert.Contains(t, out, "MAR 18 — MAR 20")
	assert.Contains(t, out, "€1100")

	v.Update(store.Summary{})
	assert.Contains(t, v.View(), "first point")
}

package presenter

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jask/tripboard/internal/database/repository"
	"github.com/jask/tripboard/internal/keys"
	"github.com/jask/tripboard/internal/logging"
	"github.com/jask/tripboard/internal/render"
	"github.com/jask/tripboard/internal/view"
)

// PointStore is the itinerary store the board writes through.
type PointStore interface {
	view.Catalog
	Points() []repository.TripPoint
	UpdatePoint(ctx context.Context, p repository.TripPoint) (repository.TripPoint, error)
	AddPoint(ctx context.Context, p repository.TripPoint) (repository.TripPoint, error)
	DeletePoint(ctx context.Context, id string) error
}

// BoardParams configures a Board.
type BoardParams struct {
	Container *render.Container
	Store     PointStore
	Keys      *keys.Dispatcher
	Format    view.Format
	Log       *logrus.Entry
	// Now stamps new points; defaults to time.Now.
	Now func() time.Time
	// OnChange fires after any successful store write.
	OnChange func()
}

// Board owns the point presenters of one list and keeps at most one of them
// editing.
type Board struct {
	ctx        context.Context
	container  *render.Container
	store      PointStore
	keys       *keys.Dispatcher
	format     view.Format
	log        *logrus.Entry
	now        func() time.Time
	onChange   func()
	presenters map[string]*PointPresenter
	// draft is the unsaved new point, if its editor is open.
	draft *PointPresenter
}

func NewBoard(ctx context.Context, p BoardParams) *Board {
	if p.Log == nil {
		p.Log = logging.Discard()
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.Container == nil {
		p.Container = render.NewContainer()
	}
	if p.Keys == nil {
		p.Keys = keys.NewDispatcher()
	}
	return &Board{
		ctx:        ctx,
		container:  p.Container,
		store:      p.Store,
		keys:       p.Keys,
		format:     p.Format,
		log:        p.Log,
		now:        p.Now,
		onChange:   p.OnChange,
		presenters: make(map[string]*PointPresenter),
	}
}

// Init renders one presenter per stored point. Calling it again clears the
// list first.
func (b *Board) Init() error {
	b.clear()
	for _, point := range b.store.Points() {
		if err := b.renderPoint(point); err != nil {
			return err
		}
	}
	b.log.WithField("points", len(b.presenters)).Debug("board rendered")
	return nil
}

// Container is where the presenters mount their views.
func (b *Board) Container() *render.Container { return b.container }

// Keys is the dispatcher presenters register their escape listeners on.
func (b *Board) Keys() *keys.Dispatcher { return b.keys }

// Presenters returns the live presenters in on-screen order, the draft
// included.
func (b *Board) Presenters() []*PointPresenter {
	out := make([]*PointPresenter, 0, len(b.presenters)+1)
	for _, p := range b.presenters {
		out = append(out, p)
	}
	if b.draft != nil {
		out = append(out, b.draft)
	}
	slices.SortFunc(out, func(x, y *PointPresenter) int {
		return b.slot(x) - b.slot(y)
	})
	return out
}

// Presenter returns the presenter for a point id.
func (b *Board) Presenter(id string) (*PointPresenter, bool) {
	p, ok := b.presenters[id]
	return p, ok
}

// Editing returns the presenter with an open editor, or nil.
func (b *Board) Editing() *PointPresenter {
	if b.draft != nil && b.draft.Mode() == ModeEditing {
		return b.draft
	}
	for _, p := range b.presenters {
		if p.Mode() == ModeEditing {
			return p
		}
	}
	return nil
}

// Drafting reports whether a new, unsaved point is being edited.
func (b *Board) Drafting() bool { return b.draft != nil }

// CreatePoint opens an editor for a new point. Nothing is stored until the
// form is submitted; closing the editor discards the draft. While a draft is
// open further calls do nothing.
func (b *Board) CreatePoint() error {
	if b.draft != nil {
		return nil
	}
	dests := b.store.Destinations()
	if len(dests) == 0 {
		return fmt.Errorf("create point: no destinations available")
	}
	start := b.now().Truncate(time.Hour).Add(time.Hour)
	draft := repository.TripPoint{
		Type:          repository.TypeFlight,
		DestinationID: dests[0].ID,
		DateFrom:      start.UTC(),
		DateTo:        start.Add(time.Hour).UTC(),
	}
	p := b.newPresenter(b.log.WithField("point", "draft"))
	if err := p.Init(draft); err != nil {
		return err
	}
	b.draft = p
	p.Edit()
	return nil
}

// DeletePoint removes a point from the store and the list.
func (b *Board) DeletePoint(id string) error {
	if id == "" && b.draft != nil {
		b.discardDraft()
		return nil
	}
	if err := b.store.DeletePoint(b.ctx, id); err != nil {
		return err
	}
	if p, ok := b.presenters[id]; ok {
		p.Destroy()
		delete(b.presenters, id)
	}
	b.log.WithField("point", id).Info("point deleted")
	b.changed()
	return nil
}

func (b *Board) newPresenter(log *logrus.Entry) *PointPresenter {
	return NewPointPresenter(PointParams{
		Container:    b.container,
		Catalog:      b.store,
		Keys:         b.keys,
		Format:       b.format,
		Log:          log,
		OnDataChange: b.handleDataChange,
		OnModeChange: b.handleModeChange,
		OnDelete:     b.DeletePoint,
		OnCancel:     b.handleCancel,
	})
}

func (b *Board) renderPoint(point repository.TripPoint) error {
	p := b.newPresenter(b.log.WithField("point", point.ID))
	if err := p.Init(point); err != nil {
		return err
	}
	b.presenters[point.ID] = p
	return nil
}

// handleModeChange closes every open editor. The presenter about to open is
// still viewing, so resetting it is a no-op.
func (b *Board) handleModeChange() {
	for _, p := range b.presenters {
		p.ResetView()
	}
	if b.draft != nil {
		b.draft.ResetView()
	}
}

// handleCancel drops the draft once its editor closes without a commit.
func (b *Board) handleCancel(id string) {
	if id == "" && b.draft != nil {
		b.discardDraft()
	}
}

func (b *Board) discardDraft() {
	b.draft.Destroy()
	b.draft = nil
	b.log.Debug("draft discarded")
}

// handleDataChange writes the candidate through the store and re-renders its
// presenter from the stored copy.
func (b *Board) handleDataChange(candidate repository.TripPoint) error {
	if candidate.ID == "" && b.draft != nil {
		return b.commitDraft(candidate)
	}
	stored, err := b.store.UpdatePoint(b.ctx, candidate)
	if err != nil {
		return err
	}
	b.changed()
	p, ok := b.presenters[stored.ID]
	if !ok {
		return nil
	}
	return p.Init(stored)
}

// commitDraft stores the new point; the draft presenter becomes a regular
// one for it.
func (b *Board) commitDraft(candidate repository.TripPoint) error {
	stored, err := b.store.AddPoint(b.ctx, candidate)
	if err != nil {
		return err
	}
	p := b.draft
	b.draft = nil
	b.presenters[stored.ID] = p
	b.log.WithField("point", stored.ID).Info("point added")
	b.changed()
	return p.Init(stored)
}

func (b *Board) changed() {
	if b.onChange != nil {
		b.onChange()
	}
}

func (b *Board) clear() {
	if b.draft != nil {
		b.discardDraft()
	}
	for id, p := range b.presenters {
		p.Destroy()
		delete(b.presenters, id)
	}
}

func (b *Board) slot(p *PointPresenter) int {
	v := p.Visible()
	if v == nil {
		return b.container.Len()
	}
	return b.container.Index(v)
}

// Package presenter drives the itinerary list: one PointPresenter per point
// switches between the display row and the edit form, and the Board keeps at
// most one of them editing.
package presenter

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jask/tripboard/internal/database/repository"
	"github.com/jask/tripboard/internal/keys"
	"github.com/jask/tripboard/internal/logging"
	"github.com/jask/tripboard/internal/render"
	"github.com/jask/tripboard/internal/view"
)

// Mode is the presentation state of one list item.
type Mode int

const (
	ModeViewing Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeViewing:
		return "viewing"
	case ModeEditing:
		return "editing"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// PointParams wires a presenter to its surroundings.
type PointParams struct {
	Container *render.Container
	Catalog   view.Catalog
	Keys      *keys.Dispatcher
	Format    view.Format
	Log       *logrus.Entry

	// OnDataChange receives candidate points; a non-nil error means the
	// store refused the candidate.
	OnDataChange func(repository.TripPoint) error
	// OnModeChange fires before a presenter enters editing.
	OnModeChange func()
	// OnDelete asks for the point to be removed from the list.
	OnDelete func(id string) error
	// OnCancel fires after the editor closes without a commit.
	OnCancel func(id string)
}

// PointPresenter owns the display and edit views of one point.
type PointPresenter struct {
	container    *render.Container
	catalog      view.Catalog
	keys         *keys.Dispatcher
	format       view.Format
	log          *logrus.Entry
	onDataChange func(repository.TripPoint) error
	onModeChange func()
	onDelete     func(id string) error
	onCancel     func(id string)

	pointView *view.PointView
	formView  *view.FormEditView

	point     repository.TripPoint
	mode      Mode
	cancelEsc func()
}

func NewPointPresenter(p PointParams) *PointPresenter {
	if p.Log == nil {
		p.Log = logging.Discard()
	}
	return &PointPresenter{
		container:    p.Container,
		catalog:      p.Catalog,
		keys:         p.Keys,
		format:       p.Format,
		log:          p.Log,
		onDataChange: p.OnDataChange,
		onModeChange: p.OnModeChange,
		onDelete:     p.OnDelete,
		onCancel:     p.OnCancel,
	}
}

// Init builds fresh views for point. The first call mounts the display row;
// later calls swap whichever view is on screen for its rebuilt counterpart
// and keep the current mode. Unresolvable references fail before anything
// on screen changes.
func (p *PointPresenter) Init(point repository.TripPoint) error {
	point = point.Clone()

	destination, err := p.catalog.DestinationByID(point.DestinationID)
	if err != nil {
		return fmt.Errorf("init point %s: %w", point.ID, err)
	}
	checked, err := p.catalog.OffersByID(point.Type, point.OfferIDs)
	if err != nil {
		return fmt.Errorf("init point %s: %w", point.ID, err)
	}

	pointView := view.NewPointView(view.PointViewParams{
		Point:           point,
		Destination:     destination,
		Offers:          checked,
		Format:          p.format,
		OnEditClick:     p.handleEditClick,
		OnFavoriteClick: p.handleFavoriteClick,
	})
	formView := view.NewFormEditView(view.FormEditViewParams{
		Point:         point,
		Destination:   destination,
		CheckedOffers: checked,
		Offers:        p.catalog.OffersByType(point.Type),
		Destinations:  p.catalog.Destinations(),
		Catalog:       p.catalog,
		Format:        p.format,
		OnFormSubmit:  p.handleFormSubmit,
		OnCloseClick:  p.handleCloseClick,
		OnDeleteClick: p.handleDeleteClick,
	})

	prevPointView, prevFormView := p.pointView, p.formView

	if prevPointView == nil || prevFormView == nil {
		if err := render.Mount(pointView, p.container, render.BeforeEnd); err != nil {
			return fmt.Errorf("mount point %s: %w", point.ID, err)
		}
		p.point, p.pointView, p.formView = point, pointView, formView
		return nil
	}

	switch p.mode {
	case ModeViewing:
		err = render.Replace(pointView, prevPointView)
	case ModeEditing:
		err = render.Replace(formView, prevFormView)
	}
	if err != nil {
		return fmt.Errorf("swap point %s: %w", point.ID, err)
	}
	p.point, p.pointView, p.formView = point, pointView, formView

	render.Dispose(prevPointView)
	render.Dispose(prevFormView)
	return nil
}

// Destroy disposes both views and drops the escape listener. Safe to call
// repeatedly.
func (p *PointPresenter) Destroy() {
	p.stopEscape()
	if p.pointView != nil {
		render.Dispose(p.pointView)
	}
	if p.formView != nil {
		render.Dispose(p.formView)
	}
	p.mode = ModeViewing
}

// ResetView closes the editor without saving. No-op while viewing.
func (p *PointPresenter) ResetView() {
	if p.mode == ModeViewing {
		return
	}
	p.cancelEdit()
}

// Mode reports the current presentation state.
func (p *PointPresenter) Mode() Mode { return p.mode }

// Point returns the last committed point.
func (p *PointPresenter) Point() repository.TripPoint { return p.point.Clone() }

// ID is the point's id.
func (p *PointPresenter) ID() string { return p.point.ID }

// Visible returns the view currently mounted, or nil.
func (p *PointPresenter) Visible() render.Component {
	if p.mode == ModeEditing {
		if p.formView != nil && p.formView.Mounted() {
			return p.formView
		}
		return nil
	}
	if p.pointView != nil && p.pointView.Mounted() {
		return p.pointView
	}
	return nil
}

// Edit opens the editor as if the row asked for it.
func (p *PointPresenter) Edit() {
	p.handleEditClick()
}

// HandleKey forwards a key to whichever view is on screen.
func (p *PointPresenter) HandleKey(msg tea.KeyMsg) (bool, error) {
	switch p.mode {
	case ModeEditing:
		if p.formView != nil {
			return p.formView.HandleKey(msg)
		}
	default:
		if p.pointView != nil {
			return p.pointView.HandleKey(msg)
		}
	}
	return false, nil
}

func (p *PointPresenter) replacePointToForm() {
	// siblings close before this one opens
	if p.onModeChange != nil {
		p.onModeChange()
	}
	if err := render.Replace(p.formView, p.pointView); err != nil {
		p.log.WithError(err).WithField("point", p.point.ID).Error("open editor")
		return
	}
	if p.cancelEsc == nil && p.keys != nil {
		p.cancelEsc = p.keys.Listen(p.escKeyDownHandler)
	}
	p.mode = ModeEditing
	p.log.WithField("point", p.point.ID).Debug("editing")
}

func (p *PointPresenter) replaceFormToPoint() {
	if err := render.Replace(p.pointView, p.formView); err != nil {
		p.log.WithError(err).WithField("point", p.point.ID).Error("close editor")
	}
	p.stopEscape()
	p.mode = ModeViewing
	p.log.WithField("point", p.point.ID).Debug("viewing")
}

func (p *PointPresenter) stopEscape() {
	if p.cancelEsc != nil {
		p.cancelEsc()
		p.cancelEsc = nil
	}
}

func (p *PointPresenter) escKeyDownHandler(msg tea.KeyMsg) bool {
	if !keys.IsEscape(msg) || p.mode != ModeEditing {
		return false
	}
	p.cancelEdit()
	return true
}

// cancelEdit reverts the form to the committed point and closes it.
func (p *PointPresenter) cancelEdit() {
	p.formView.Reset(p.point)
	p.replaceFormToPoint()
	if p.onCancel != nil {
		p.onCancel(p.point.ID)
	}
}

func (p *PointPresenter) handleEditClick() {
	if p.mode == ModeEditing {
		return
	}
	// not initialised, or already destroyed
	if p.pointView == nil || !p.pointView.Mounted() {
		return
	}
	p.replacePointToForm()
}

func (p *PointPresenter) handleFavoriteClick() error {
	if p.mode != ModeViewing {
		return nil
	}
	update := p.point.Clone()
	update.IsFavorite = !update.IsFavorite
	return p.dataChange(update)
}

func (p *PointPresenter) handleCloseClick() {
	p.cancelEdit()
}

func (p *PointPresenter) handleFormSubmit(candidate repository.TripPoint) error {
	if err := p.dataChange(candidate); err != nil {
		p.log.WithError(err).WithField("point", candidate.ID).Warn("commit rejected")
		return err
	}
	p.replaceFormToPoint()
	return nil
}

func (p *PointPresenter) handleDeleteClick() error {
	if p.onDelete == nil {
		return nil
	}
	return p.onDelete(p.point.ID)
}

func (p *PointPresenter) dataChange(point repository.TripPoint) error {
	if p.onDataChange == nil {
		return nil
	}
	return p.onDataChange(point)
}

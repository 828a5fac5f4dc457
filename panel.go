package launchpad

import (
	"fmt"
	"log/slog"

	"github.com/phanxgames/launchpad/store"
	"github.com/tanema/gween/ease"
)

// Settings paths written by the panel.
const (
	SettingLayout     = "panel.layout"
	SettingGroup      = "panel.group"
	SettingAutomation = "automation.enabled"
)

const (
	toolbarHeight = 28
	stripHeight   = 22
	unpinSize     = 18
	flashAlpha    = 0.45
	flashDuration = 0.35
)

var (
	panelFill  = Color{0.12, 0.13, 0.16, 1}
	cardFill   = Color{0.24, 0.36, 0.58, 1}
	stripFill  = Color{0.17, 0.25, 0.42, 1}
	unpinFill  = Color{0.70, 0.28, 0.28, 1}
	buttonFill = Color{0.30, 0.30, 0.36, 1}
)

// PanelOptions configures NewPanel.
type PanelOptions struct {
	Config PanelConfig
	Drag   DragConfig
	Logger *slog.Logger
	// OnOpen is called when a card is clicked (not dropped).
	OnOpen func(e store.Entry)
}

// Panel shows the pinned entries of one library group as cards that can be
// dragged into a new order, opened with a click, or unpinned.
type Panel struct {
	scene   *Scene
	store   *store.Store
	lib     *store.Library
	reorder *Reorder
	cfg     PanelConfig
	log     *slog.Logger
	onOpen  func(store.Entry)

	groupID string
	toggle  *Node
	list    *Node
	entries map[string]store.Entry
}

// NewPanel builds the panel's nodes under the scene root. The layout mode
// saved in st wins over opts.Config.Layout.
func NewPanel(scene *Scene, st *store.Store, opts PanelOptions) (*Panel, error) {
	lib, err := st.Library()
	if err != nil {
		return nil, fmt.Errorf("new panel: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = scene.Logger()
	}
	cfg := opts.Config

	mode, err := ParseLayoutMode(st.String(SettingLayout, cfg.Layout))
	if err != nil {
		log.Warn("ignoring saved layout", "err", err)
		mode = LayoutScroll
	}

	p := &Panel{
		scene:   scene,
		store:   st,
		lib:     lib,
		cfg:     cfg,
		log:     log.With("component", "panel"),
		onOpen:  opts.OnOpen,
		entries: make(map[string]store.Entry),
	}

	p.toggle = NewBox("layout-toggle", 140, toolbarHeight-6, buttonFill)
	p.toggle.SetPosition(cfg.X, cfg.Y)
	p.toggle.OnClick = func(ClickContext) {
		if err := p.ToggleLayout(); err != nil {
			p.log.Warn("toggle layout failed", "err", err)
		}
	}

	p.list = NewContainer("pinned")
	p.list.Fill = panelFill
	p.list.Width = cfg.Width
	p.list.Interactable = true
	p.list.SetPosition(cfg.X, cfg.Y+toolbarHeight)
	p.list.SetFlow(&FlowLayout{Mode: mode, Gap: cfg.Gap, Padding: cfg.Padding})

	scene.Root().AddChild(p.toggle)
	scene.Root().AddChild(p.list)
	p.updateToggleLabel()

	rc := opts.Drag.ReorderConfig()
	rc.Logger = log
	rc.LayoutMode = p.LayoutMode
	rc.Persist = p.persistOrder
	rc.OnDrop = p.flash
	p.reorder = NewReorder(scene, rc)
	return p, nil
}

// List returns the container holding the cards.
func (p *Panel) List() *Node { return p.list }

// Reorder returns the panel's drag controller.
func (p *Panel) Reorder() *Reorder { return p.reorder }

// Library returns the library the panel edits.
func (p *Panel) Library() *store.Library { return p.lib }

// GroupID returns the group on display.
func (p *Panel) GroupID() string { return p.groupID }

// Card returns the card showing entryID, or nil.
func (p *Panel) Card(entryID string) *Node {
	for _, c := range p.list.Children() {
		if c.Key == entryID {
			return c
		}
	}
	return nil
}

// Show rebuilds the cards for the pinned entries of groupID, in group order.
func (p *Panel) Show(groupID string) error {
	pinned, err := p.lib.Pinned(groupID)
	if err != nil {
		return fmt.Errorf("show group: %w", err)
	}
	if err := p.store.Set(SettingGroup, groupID); err != nil {
		return fmt.Errorf("show group: %w", err)
	}

	p.reorder.Cancel()
	for _, c := range append([]*Node(nil), p.list.Children()...) {
		p.reorder.Detach(c)
		c.Dispose()
	}
	clear(p.entries)

	p.groupID = groupID
	for _, e := range pinned {
		p.entries[e.ID] = e
		card := p.newCard(e)
		p.list.AddChild(card)
		p.reorder.Attach(card)
	}
	p.log.Debug("showing group", "group", groupID, "cards", len(pinned))
	return nil
}

func (p *Panel) newCard(e store.Entry) *Node {
	w, h := p.cfg.CardWidth, p.cfg.CardHeight
	card := NewBox("card:"+e.Name, w, h, cardFill)
	card.Key = e.ID
	card.UserData = e
	card.Label = e.Name
	if e.Mode != "" {
		card.Label += "\n" + e.Mode
	}

	strip := NewBox("actions", w, stripHeight, stripFill)
	strip.SetPosition(0, h-stripHeight)
	strip.AddClass(ClassNoDrag)
	card.AddChild(strip)

	unpin := NewBox("unpin", unpinSize, unpinSize, unpinFill)
	unpin.SetPosition(w-unpinSize-2, (stripHeight-unpinSize)/2)
	unpin.Label = "x"
	id := e.ID
	unpin.OnClick = func(ClickContext) {
		if err := p.Unpin(id); err != nil {
			p.log.Warn("unpin failed", "entry", id, "err", err)
		}
	}
	strip.AddChild(unpin)

	card.OnClick = func(ctx ClickContext) {
		if insideNoDrag(ctx.Node, card) {
			return
		}
		if p.reorder.ConsumeDragCompleted(card) {
			p.log.Debug("click after drop suppressed", "entry", id)
			return
		}
		p.Open(id)
	}
	return card
}

// Open records entryID as recently used and hands it to OnOpen.
func (p *Panel) Open(entryID string) {
	e, ok := p.entries[entryID]
	if !ok {
		p.log.Warn("open: unknown entry", "entry", entryID)
		return
	}
	p.lib.Remember(store.Entry{Name: e.Name, Mode: e.Mode, Options: e.Options})
	if err := p.save(); err != nil {
		p.log.Warn("saving recent list failed", "err", err)
	}
	if p.onOpen != nil {
		p.onOpen(e)
	}
}

// Unpin removes entryID from the panel; the entry stays in its group.
func (p *Panel) Unpin(entryID string) error {
	if err := p.lib.SetPinned(p.groupID, entryID, false); err != nil {
		return err
	}
	if err := p.save(); err != nil {
		return err
	}
	return p.Show(p.groupID)
}

// LayoutMode returns the list's current flow mode.
func (p *Panel) LayoutMode() LayoutMode {
	return p.list.Flow.Mode
}

// SetLayoutMode switches the list between scroll and wrap and remembers
// the choice in settings.
func (p *Panel) SetLayoutMode(mode LayoutMode) error {
	if mode == p.LayoutMode() {
		return nil
	}
	p.list.SetLayoutMode(mode)
	p.updateToggleLabel()
	if err := p.store.Set(SettingLayout, mode.String()); err != nil {
		return err
	}
	p.log.Info("layout changed", "mode", mode)
	return p.store.Save()
}

// ToggleLayout flips between scroll and wrap.
func (p *Panel) ToggleLayout() error {
	if p.LayoutMode() == LayoutWrap {
		return p.SetLayoutMode(LayoutScroll)
	}
	return p.SetLayoutMode(LayoutWrap)
}

func (p *Panel) updateToggleLabel() {
	p.toggle.Label = "layout: " + p.LayoutMode().String()
}

// persistOrder writes a committed drag order back to the group.
func (p *Panel) persistOrder(keys []string) error {
	if err := p.lib.ReorderGroup(p.groupID, keys); err != nil {
		return err
	}
	return p.save()
}

// flash dims the dropped card and fades it back in.
func (p *Panel) flash(card *Node) {
	card.SetAlpha(flashAlpha)
	p.scene.AddTween(TweenAlpha(card, 1, flashDuration, ease.OutQuad))
}

func (p *Panel) save() error {
	if err := p.store.SetLibrary(p.lib); err != nil {
		return err
	}
	return p.store.Save()
}

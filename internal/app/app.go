// Package app assembles the overlay: the scene, the pets, the panels, and
// the background bridges (tray menu, file dialog, resource sampler). It owns
// the ebiten game loop and all cross-package wiring; the packages underneath
// never talk to each other directly.
package app

import (
	"context"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tushargaudara/Anima-Engine/internal/anim"
	"github.com/tushargaudara/Anima-Engine/internal/config"
	"github.com/tushargaudara/Anima-Engine/internal/dialog"
	"github.com/tushargaudara/Anima-Engine/internal/monitor"
	"github.com/tushargaudara/Anima-Engine/internal/pet"
	"github.com/tushargaudara/Anima-Engine/internal/scene"
	"github.com/tushargaudara/Anima-Engine/internal/settings"
	"github.com/tushargaudara/Anima-Engine/internal/tray"
	"github.com/tushargaudara/Anima-Engine/internal/ui"
)

const (
	// saveDebounce batches rapid state changes (drags, slider moves) into
	// one write.
	saveDebounce = 1.0
	// activeGrace keeps the full tick rate for a moment after the last
	// interaction so follow-up clicks stay responsive.
	activeGrace = 2.0
	// selectorMargin offsets the selector panel from the bottom-right
	// corner, clear of common taskbar positions.
	selectorMargin = 60
)

// petLook remembers what a pet displayed before the idle animation took
// over, so waking restores each pet's own choice.
type petLook struct {
	pet  *pet.Pet
	clip *anim.Clip
	path string
}

// traceSink logs every scene interaction. Installed only at debug level;
// hover moves alone would make it chatty.
type traceSink struct{}

func (traceSink) Emit(ev scene.Event) {
	name := ""
	if ev.Node != nil {
		name = ev.Node.Name
	}
	slog.Debug("scene event", "type", ev.Type, "node", name,
		"x", ev.GlobalX, "y", ev.GlobalY)
}

// App is the overlay application. It implements ebiten.Game.
type App struct {
	cfg       settings.Config
	statePath string

	scene    *scene.Scene
	library  *anim.Library
	manager  *pet.Manager
	selector *ui.Selector
	menu     *ui.Menu

	tray        *tray.Tray
	picker      *dialog.Picker
	sampler     *monitor.Sampler
	stopSampler context.CancelFunc
	started     bool

	monitorW, monitorH int

	current *pet.Pet // pet the selector applies changes to
	menuPet *pet.Pet // pet the context menu was opened on

	opacity  float64
	idleClip *anim.Clip
	idlePath string
	idling   bool
	restore  []petLook

	passthrough bool
	tpsActive   bool

	savePending bool
	saveIn      float64

	quit bool
}

// New builds the full application against a monitor of the given size. It
// loads persisted state, spawns the primary pet, and wires every callback,
// but starts no background goroutines; Start does that.
func New(cfg settings.Config, statePath string, monitorW, monitorH int) (*App, error) {
	a := &App{
		cfg:       cfg,
		statePath: statePath,
		scene:     scene.NewScene(),
		library:   anim.NewLibrary(cfg.Animations.Dirs...),
		tray:      tray.New(),
		picker:    dialog.New(),
		sampler:   monitor.NewSampler(),
		monitorW:  monitorW,
		monitorH:  monitorH,
		tpsActive: true,
	}
	if cfg.Debug.ScreenshotDir != "" {
		a.scene.ScreenshotDir = cfg.Debug.ScreenshotDir
	}

	st := config.Load(statePath)
	startPath := st.Animation
	if startPath != "" && !a.library.Exists(startPath) {
		slog.Warn("saved animation missing, using builtin", "path", startPath)
		startPath = ""
	}
	clip := anim.NewClip(a.library.LoadOrBuiltin(startPath))

	a.manager = pet.NewManager(a.scene.Root(), pet.Options{
		Size:       float64(cfg.Pet.Size),
		MaxCount:   cfg.Pet.MaxCount,
		MinOpacity: cfg.Pet.MinOpacity,
		FadeIn:     cfg.Pet.FadeIn,
		BoundsW:    float64(monitorW),
		BoundsH:    float64(monitorH),
	})
	primary := a.manager.SpawnPrimary(clip, startPath, st.Pos, st.Opacity)
	a.current = primary
	a.opacity = primary.Opacity()

	a.selector = ui.NewSelector(a.library, float64(cfg.Animations.Preview))
	a.selector.SetEntries(a.library.Scan())
	if startPath != "" {
		// The saved animation may live outside the search dirs; it still
		// belongs in the list, selected.
		a.selector.AddEntry(startPath)
	}
	a.selector.SetOpacity(a.opacity)
	sw, sh := a.selector.Panel.Size()
	a.selector.Panel.Node.SetPosition(
		float64(monitorW)-sw-selectorMargin,
		float64(monitorH)-sh-selectorMargin,
	)
	a.selector.Panel.Node.ZIndex = 100
	a.scene.Root().AddChild(a.selector.Panel.Node)

	a.menu = ui.NewMenu(float64(monitorW), float64(monitorH))
	a.menu.Panel.Node.ZIndex = 200
	a.menu.Attach(a.scene)
	a.scene.Root().AddChild(a.menu.Panel.Node)

	a.loadIdleAnimation()
	a.wire()
	if cfg.Log.Level == "debug" {
		a.scene.SetEventSink(traceSink{})
	}
	if cfg.Debug.Scene {
		a.scene.SetDebugMode(true)
	}

	if cfg.Debug.HUD {
		a.scene.Root().AddChild(newHUD(a.sampler, a.manager))
	}

	// Record the resolved state right away so a fresh install gets a file.
	a.saveState()

	slog.Info("overlay ready",
		"monitor_w", monitorW, "monitor_h", monitorH,
		"animation", startPath, "entries", len(a.selector.Entries()))
	return a, nil
}

// loadIdleAnimation decodes the configured idle animation, if any. A broken
// idle path only disables idling; it never blocks startup.
func (a *App) loadIdleAnimation() {
	path := a.cfg.Animations.Idle
	if path == "" {
		return
	}
	seq, err := a.library.Load(path)
	if err != nil {
		slog.Warn("idle animation unavailable", "path", path, "error", err)
		return
	}
	a.idleClip = anim.NewClip(seq)
	a.idlePath = path
}

// wire connects pets, panels, and bridges to application behavior.
func (a *App) wire() {
	a.manager.OnInteract = func(p *pet.Pet) {
		a.current = p
		a.wake()
	}
	a.manager.OnMoved = func(p *pet.Pet) {
		if p == a.manager.Primary() {
			a.requestSave()
		}
	}
	a.manager.OnMenu = func(p *pet.Pet, x, y float64) {
		a.menuPet = p
		a.current = p
		a.menu.ShowFor(x, y, p.Locked(),
			a.manager.Count() < a.cfg.Pet.MaxCount,
			a.manager.Count() > 1)
	}

	a.selector.OnApply = a.applyAnimation
	a.selector.OnOpacity = func(v float64) {
		a.opacity = v
		a.manager.SetOpacityAll(v)
		a.requestSave()
	}
	a.selector.OnAddRequest = func() {
		if !a.picker.Open("Add Animation") {
			slog.Debug("file dialog already open")
		}
	}

	a.menu.OnLockToggle = func() {
		if a.menuPet == nil {
			return
		}
		locked := a.menuPet.ToggleLock()
		slog.Debug("pet lock toggled", "pet", a.menuPet, "locked", locked)
	}
	a.menu.OnChangeCharacter = func() {
		a.showSelector(a.menuPet)
	}
	a.menu.OnAddPet = func() {
		if _, err := a.manager.Add(); err != nil {
			slog.Warn("add pet refused", "error", err)
		}
	}
	a.menu.OnRemovePet = func() {
		if err := a.manager.Remove(); err != nil {
			slog.Warn("remove pet refused", "error", err)
			return
		}
		a.forgetDead()
	}
	a.menu.OnQuit = func() { a.quit = true }

	// Any press on scene content counts as activity, panels included.
	a.scene.OnPointerDown(func(ctx scene.PointerContext) {
		if ctx.Node != nil {
			a.wake()
		}
	})
}

// Start launches the background goroutines: the tray icon and, with the HUD
// enabled, the resource sampler.
func (a *App) Start() {
	icon, err := anim.IconPNG(a.library.LoadOrBuiltin(a.primaryPath()))
	if err != nil {
		slog.Warn("tray icon render failed", "error", err)
	}
	a.tray.Start(icon, "Anima")
	if a.cfg.Debug.HUD {
		ctx, cancel := context.WithCancel(context.Background())
		a.stopSampler = cancel
		a.sampler.Start(ctx)
	}
	a.started = true
}

// Close stops background goroutines and writes a final state snapshot.
func (a *App) Close() {
	if a.started {
		a.tray.Stop()
		a.started = false
	}
	if a.stopSampler != nil {
		a.stopSampler()
		a.sampler.Wait()
		a.stopSampler = nil
	}
	a.saveState()
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	a.step(1.0 / float64(ebiten.TPS()))
	if a.quit {
		return ebiten.Termination
	}
	return nil
}

// step advances the whole application by dt seconds.
func (a *App) step(dt float64) {
	a.drainTray()
	a.pollPicker()

	a.scene.Update(dt)
	a.manager.Update(dt)
	a.selector.Update(dt)

	a.routeWheel()
	a.stepIdle()
	a.stepSave(dt)
	a.applyThrottle()
	a.applyPassthrough()

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		a.scene.Screenshot("overlay")
	}
}

// Draw implements ebiten.Game. The screen is transparent; only scene
// content gets pixels.
func (a *App) Draw(screen *ebiten.Image) {
	a.scene.Draw(screen)
}

// Layout implements ebiten.Game. The overlay always renders at monitor
// resolution.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.monitorW, a.monitorH
}

// drainTray applies every queued tray menu action.
func (a *App) drainTray() {
	for {
		select {
		case r := <-a.tray.Requests():
			a.handleTray(r)
		default:
			return
		}
	}
}

func (a *App) handleTray(r tray.Request) {
	slog.Debug("tray request", "request", r)
	switch r {
	case tray.RequestShowSelector:
		a.showSelector(a.manager.Primary())
	case tray.RequestHideSelector:
		a.selector.Hide()
	case tray.RequestQuit:
		a.quit = true
	}
}

// pollPicker collects a finished file dialog, if any, and adds the chosen
// animation to the selector.
func (a *App) pollPicker() {
	res, ok := a.picker.Poll()
	if !ok || res.Canceled {
		return
	}
	if !anim.IsAnimationPath(res.Path) {
		slog.Warn("unsupported animation file", "path", res.Path)
		return
	}
	if a.selector.AddEntry(res.Path) {
		slog.Info("animation added", "path", res.Path)
	}
}

// routeWheel forwards mouse wheel movement to the selector list. The scene
// input layer covers buttons only.
func (a *App) routeWheel() {
	if !a.selector.Visible() {
		return
	}
	_, wy := ebiten.Wheel()
	if wy != 0 {
		a.selector.HandleWheel(wy)
		a.manager.ResetIdle()
	}
}

// showSelector opens the character selector targeting the given pet.
func (a *App) showSelector(target *pet.Pet) {
	a.wake()
	if target != nil {
		a.current = target
		a.selector.SelectPath(target.Path())
	}
	a.selector.Show()
}

// applyAnimation binds the chosen animation to the current pet. Applying to
// the primary pet is what future sessions restore.
func (a *App) applyAnimation(path string) {
	seq, err := a.library.Load(path)
	if err != nil {
		slog.Warn("animation apply failed", "path", path, "error", err)
		return
	}

	a.wake()
	target := a.current
	if target == nil {
		target = a.manager.Primary()
	}
	if target == nil {
		return
	}
	target.SetClip(anim.NewClip(seq), path)
	if target == a.manager.Primary() {
		a.requestSave()
	}
	slog.Info("animation applied", "path", path, "pet", target)
}

// stepIdle switches pets to the idle animation once the desktop has been
// quiet long enough. Waking happens through wake on the next interaction.
func (a *App) stepIdle() {
	if a.idleClip == nil || a.idling {
		return
	}
	if a.manager.IdleFor() < a.cfg.Pet.IdleTimeout {
		return
	}
	a.restore = a.restore[:0]
	for _, p := range a.manager.Pets() {
		a.restore = append(a.restore, petLook{pet: p, clip: p.Clip(), path: p.Path()})
		p.SetClip(a.idleClip, a.idlePath)
	}
	a.idling = true
	slog.Debug("pets idling", "after_s", a.cfg.Pet.IdleTimeout)
}

// wake restores pre-idle animations and resets the idle clock.
func (a *App) wake() {
	if a.idling {
		live := make(map[*pet.Pet]bool, a.manager.Count())
		for _, p := range a.manager.Pets() {
			live[p] = true
		}
		for _, lk := range a.restore {
			if live[lk.pet] {
				lk.pet.SetClip(lk.clip, lk.path)
			}
		}
		a.restore = a.restore[:0]
		a.idling = false
	}
	a.manager.ResetIdle()
}

// forgetDead repoints pet references after a removal.
func (a *App) forgetDead() {
	live := make(map[*pet.Pet]bool, a.manager.Count())
	for _, p := range a.manager.Pets() {
		live[p] = true
	}
	if !live[a.current] {
		a.current = a.manager.Primary()
	}
	if !live[a.menuPet] {
		a.menuPet = nil
	}
}

// primaryPath returns the primary pet's animation path, looking through the
// idle swap so idling never leaks into saved state.
func (a *App) primaryPath() string {
	p := a.manager.Primary()
	if p == nil {
		return ""
	}
	if a.idling {
		for _, lk := range a.restore {
			if lk.pet == p {
				return lk.path
			}
		}
	}
	return p.Path()
}

// requestSave schedules a debounced state write.
func (a *App) requestSave() {
	a.savePending = true
	a.saveIn = saveDebounce
}

func (a *App) stepSave(dt float64) {
	if !a.savePending {
		return
	}
	a.saveIn -= dt
	if a.saveIn > 0 {
		return
	}
	a.savePending = false
	a.saveState()
}

// saveState writes the primary pet's position, animation, and the shared
// opacity. Failures are logged and ignored; state is a convenience.
func (a *App) saveState() {
	st := config.State{
		Animation: a.primaryPath(),
		Opacity:   a.opacity,
	}
	if p := a.manager.Primary(); p != nil {
		x, y := p.Position()
		st.Pos = &[2]float64{x, y}
	}
	if err := config.Save(a.statePath, st); err != nil {
		slog.Warn("state save failed", "error", err)
	}
}

// applyThrottle drops the tick rate while nothing needs responsiveness.
func (a *App) applyThrottle() {
	active := a.selector.Visible() || a.menu.Visible() ||
		a.manager.AnyDragging() || a.manager.IdleFor() < activeGrace
	if active == a.tpsActive {
		return
	}
	a.tpsActive = active
	if active {
		ebiten.SetTPS(a.cfg.Window.ActiveTPS)
	} else {
		ebiten.SetTPS(a.cfg.Window.IdleTPS)
	}
}

// applyPassthrough lets mouse input fall through to the desktop whenever
// the cursor is over empty overlay, so the pets never block normal work.
func (a *App) applyPassthrough() {
	cx, cy := ebiten.CursorPosition()
	over := a.scene.InteractableAt(float64(cx), float64(cy))
	want := !over && !a.selector.Visible() && !a.menu.Visible()
	if want == a.passthrough {
		return
	}
	a.passthrough = want
	ebiten.SetWindowMousePassthrough(want)
}

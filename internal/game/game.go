// Package game runs the landing page window: the portrait particle field
// on one half, the billboard menu on the other, and the dev panel on top.
package game

import (
	"image"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"

	"github.com/iburimskiy/portfolio-landing/internal/audio"
	"github.com/iburimskiy/portfolio-landing/internal/billboard"
	"github.com/iburimskiy/portfolio-landing/internal/config"
	"github.com/iburimskiy/portfolio-landing/internal/devpanel"
	"github.com/iburimskiy/portfolio-landing/internal/particles"
)

// Options is everything the game needs from start-up.
type Options struct {
	Store    *config.Store
	Portrait image.Image // nil leaves the particle field empty
	Palette  particles.Palette
	Chime    *audio.Chime // nil is muted
	Logger   *log.Logger
	Verbose  bool
	Seed     uint64
}

// Game implements ebiten.Game.
type Game struct {
	store    *config.Store
	settings config.Settings
	portrait image.Image

	field   *particles.Field
	pointer particles.Pointer
	menu    *billboard.Menu
	panel   *devpanel.Panel
	chime   *audio.Chime
	fonts   *fonts

	fieldView *viewport
	menuView  *viewport

	width, height int
	frame         uint64

	touchIDs         []ebiten.TouchID
	releasedTouchIDs []ebiten.TouchID
	lastHover        hoverPos

	// input edge detection
	prevKey map[ebiten.Key]bool

	particleImg *ebiten.Image
	vertices    []ebiten.Vertex
	indices     []uint16

	logger  *log.Logger
	verbose bool
}

// New builds the game. A missing portrait or font leaves the matching
// module inert rather than failing.
func New(opts Options) (*Game, error) {
	if opts.Store == nil {
		return nil, errors.New("game: nil settings store")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	g := &Game{
		store:     opts.Store,
		settings:  opts.Store.Commit(),
		portrait:  opts.Portrait,
		pointer:   particles.NewPointer(),
		panel:     devpanel.New(opts.Store),
		chime:     opts.Chime,
		fieldView: newViewport(config.FieldCameraFOV, config.FieldCameraZ),
		menuView:  newViewport(config.MenuCameraFOV, config.MenuCameraZ),
		prevKey:   map[ebiten.Key]bool{},
		logger:    logger,
		verbose:   opts.Verbose,
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	g.field = particles.NewField(opts.Palette, rng)
	g.regenerate(true)

	f, err := loadFonts()
	if err != nil {
		logger.Printf("billboards disabled: %v", err)
	} else {
		g.fonts = f
		g.menu = billboard.NewMenu(billboard.DefaultEntries(), f, g.settings, g.onClick)
	}

	g.particleImg = newParticleImage()
	g.resize(config.WindowWidth, config.WindowHeight)
	return g, nil
}

func (g *Game) onClick(label string) {
	if g.verbose {
		g.logger.Printf("clicked %q", label)
	}
	g.chime.Click()
}

// regenerate rebuilds the particles from the portrait with the current
// density. reveal replays the fade-in; panel edits resample in place.
func (g *Game) regenerate(reveal bool) {
	if g.portrait == nil {
		return
	}
	if reveal {
		g.field.Load(g.portrait, g.settings)
	} else {
		g.field.Resample(g.portrait, g.settings)
	}
	if g.verbose {
		g.logger.Printf("generated %d particles", g.field.Len())
	}
}

func (g *Game) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	g.width, g.height = w, h
	fieldRect, menuRect := splitWindow(w, h)
	g.fieldView.resize(fieldRect)
	g.menuView.resize(menuRect)
	g.applyZoom()
}

// applyZoom places the menu camera for the window orientation.
func (g *Game) applyZoom() {
	g.menuView.cam.SetDistance(config.MenuCameraZ * g.settings.Zoom(g.width, g.height))
}

// now is the frame clock in milliseconds.
func (g *Game) now() float64 {
	return float64(g.frame) * 1000 / config.TicksPerSecond
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	prev := g.settings
	g.settings = g.store.Commit()
	// Size is baked into each particle, so it needs a fresh sample too.
	if g.settings.ParticleDensity != prev.ParticleDensity || g.settings.ParticleSize != prev.ParticleSize {
		g.regenerate(false)
	}
	if g.settings.DesktopZoom != prev.DesktopZoom || g.settings.MobileZoom != prev.MobileZoom {
		g.applyZoom()
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeyF1) {
		g.panel.ToggleVisible()
	}
	if justPressed(ebiten.KeyC) {
		g.field.TriggerColorChange()
	}
	if justPressed(ebiten.KeyR) {
		g.regenerate(true)
	}
	if g.panel.Visible() {
		g.handlePanelKeys(justPressed)
	}

	g.handlePointer(g.samplePointer())

	dt := 1.0 / config.TicksPerSecond
	g.field.Update(g.settings, g.pointer, dt)
	if g.menu != nil {
		g.menu.Update(g.now(), g.settings)
	}
	g.panel.Update(dt)
	g.frame++
	return nil
}

func (g *Game) handlePanelKeys(justPressed func(ebiten.Key) bool) {
	step := 1
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		step = 10
	}
	if justPressed(ebiten.KeyUp) {
		g.panel.Move(-1)
	}
	if justPressed(ebiten.KeyDown) {
		g.panel.Move(1)
	}
	if justPressed(ebiten.KeyLeft) {
		g.panel.Adjust(-step)
	}
	if justPressed(ebiten.KeyRight) {
		g.panel.Adjust(step)
	}
	if justPressed(ebiten.KeySpace) || justPressed(ebiten.KeyEnter) {
		g.panel.Adjust(1)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.drawParticles(screen)
	g.drawBillboards(screen)
	if g.settings.ShowBorders {
		g.drawBorders(screen)
	}
	if g.panel.Visible() {
		g.drawPanel(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

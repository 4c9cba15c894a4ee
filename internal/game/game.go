package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
)

// noticeFrames is how long a transient HUD notice stays up (~2 s at 60 TPS).
const noticeFrames = 120

// Options configures the windowed game.
type Options struct {
	Rules  Rules
	Seed   int64 // 0 seeds from the clock
	Logger zerolog.Logger
	Touch  bool // show the on-screen control strip
}

// Game is the ebiten adapter: it turns keyboard, mouse and touch state into
// intents and one-shot triggers, steps the loop once per Update and draws
// the latest snapshot.
type Game struct {
	loop  *Loop
	input *Intents
	feed  *EventFeed
	log   zerolog.Logger
	seed  int64

	keys        *edgeKeys
	touch       *touchStrip
	touchIDs    []ebiten.TouchID
	touchActive IntentSet

	playerSprite *ebiten.Image
	enemySprite  *ebiten.Image

	notice      string
	noticeTicks int
}

// New builds the game on the start screen.
func New(opts Options) (*Game, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	feed := NewEventFeed(feedMaxEntries)
	engine, err := NewEngine(opts.Rules,
		WithRandom(rand.New(rand.NewSource(seed))), // #nosec G404 -- game only
		WithLogger(opts.Logger),
		WithEventSink(feed),
	)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	g := &Game{
		input:        &Intents{},
		feed:         feed,
		log:          opts.Logger,
		seed:         seed,
		keys:         newEdgeKeys(),
		playerSprite: newTankSprite(colPlayer),
		enemySprite:  newTankSprite(colEnemy),
	}
	g.loop = NewLoop(engine, g.input)
	if opts.Touch {
		g.touch = newTouchStrip(int(opts.Rules.World.Width), int(opts.Rules.World.Height))
	}
	g.log.Info().Int64("seed", seed).Bool("touch", opts.Touch).Msg("game ready")
	return g, nil
}

func (g *Game) Update() error {
	g.handleInput()
	g.loop.Step()
	if g.noticeTicks > 0 {
		g.noticeTicks--
	}
	return nil
}

// handleInput refreshes the held intents and fires one-shot triggers.
func (g *Game) handleInput() {
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	held, pressed := pointers(g.touchIDs)

	var touchIn IntentSet
	resetTap := false
	if g.touch != nil {
		touchIn, resetTap = g.touch.hits(held, pressed)
	}
	g.touchActive = touchIn
	g.input.Store(keyboardIntents().Union(touchIn))

	// Poll every edge key each frame so none misses its release.
	resetKey := g.keys.pressed(ebiten.KeyR)
	enterKey := g.keys.pressed(ebiten.KeyEnter)
	spaceKey := g.keys.pressed(ebiten.KeySpace)
	copyKey := g.keys.pressed(ebiten.KeyC)
	g.keys.flush()

	switch {
	case resetKey || resetTap:
		g.loop.Reset()
	case g.loop.Engine().Phase() == PhaseNotStarted && (enterKey || spaceKey || len(pressed) > 0):
		g.loop.Start()
	}

	if copyKey {
		g.copyRunReport()
	}
}

func (g *Game) copyRunReport() {
	e := g.loop.Engine()
	report := RunReport(g.seed, g.loop.Last(), e.Stats(), g.feed.Recent())
	if err := copyReport(report); err != nil {
		g.log.Warn().Err(err).Msg("copy run report")
		g.setNotice("clipboard unavailable")
		return
	}
	g.log.Info().Int("tick", e.Tick()).Msg("run report copied")
	g.setNotice("run report copied to clipboard")
}

func (g *Game) setNotice(s string) {
	g.notice = s
	g.noticeTicks = noticeFrames
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	s := g.loop.Last()
	g.drawArena(screen, s)
	g.drawHUD(screen, s)
	if s.Phase == PhaseNotStarted {
		drawStartOverlay(screen, s.World)
	}
	if g.touch != nil {
		g.touch.draw(screen, g.touchActive)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	w := g.loop.Engine().Rules().World
	h := int(w.Height)
	if g.touch != nil {
		h += touchStripHeight
	}
	return int(w.Width), h
}

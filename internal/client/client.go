// Package client implements the interactive game: the window, the main loop,
// input mapping, audio and rendering around an app.World.
package client

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Faultbox/snowtrack/internal/app"
	"github.com/Faultbox/snowtrack/internal/assets"
	"github.com/Faultbox/snowtrack/internal/config"
	"github.com/Faultbox/snowtrack/internal/engine/audio"
	"github.com/Faultbox/snowtrack/internal/engine/camera"
	"github.com/Faultbox/snowtrack/internal/engine/debug"
	"github.com/Faultbox/snowtrack/internal/engine/input"
	"github.com/Faultbox/snowtrack/internal/engine/lighting"
	"github.com/Faultbox/snowtrack/internal/engine/renderer"
	"github.com/Faultbox/snowtrack/internal/engine/window"
	"github.com/Faultbox/snowtrack/internal/logger"
	"github.com/Faultbox/snowtrack/pkg/math"
)

// Longest step simulated in one frame. Slower frames run in slow motion.
const maxFrameStep = 0.1

// How often the window title is refreshed.
const titleInterval = 250 * time.Millisecond

// Far plane of the overview camera.
const overviewFar = 2000

// Client is the main game instance.
type Client struct {
	config  *config.Config
	running bool
	paused  bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	assets   *assets.Manager

	world    *app.World
	hud      *app.HUD
	overview *camera.OrbitCamera
	orbiting bool

	screenshots *debug.Screenshots
	capture     bool
}

// New creates the window, loads the assets and builds the world.
func New(cfg *config.Config) (*Client, error) {
	c := &Client{
		config: cfg,
		log:    logger.Named("client"),
		hud:    app.NewHUD(),
	}
	c.screenshots = debug.NewScreenshots(filepath.Join(config.ConfigDir(), "screenshots"), "snowtrack")

	c.log.Info("initializing client",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	// Create window (this also creates OpenGL context)
	var err error
	c.window, err = window.New(window.Config{
		Title:      app.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := c.window.GetSize()
	c.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	c.input = input.New()
	c.assets = assets.NewManager(cfg.Data.AssetDir)

	var cues audio.CuePlayer = audio.Nop{}
	if !cfg.Audio.Muted {
		if mgr, err := c.initAudio(); err != nil {
			c.log.Warn("audio disabled", zap.Error(err))
		} else {
			c.audio = mgr
			cues = mgr
		}
	}

	c.world, err = app.InitializeWorld(cfg, cues, clockwork.NewRealClock(), app.Aspect(c.window.Aspect()))
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to build world: %w", err)
	}

	if err := c.uploadModels(); err != nil {
		c.Close()
		return nil, err
	}

	c.overview = camera.NewOrbitCamera()
	c.overview.FitToBounds(c.world.Track.Bounds())

	c.log.Info("client initialized", zap.Uint64("seed", uint64(c.world.Seed)))
	return c, nil
}

func (c *Client) initAudio() (*audio.Manager, error) {
	mgr := audio.New(uint64(time.Now().UnixNano()))
	if err := mgr.Init(); err != nil {
		return nil, err
	}
	mgr.SetMasterVolume(float64(c.config.Audio.MasterVolume))
	mgr.SetMusicVolume(float64(c.config.Audio.MusicVolume))
	mgr.SetSFXVolume(float64(c.config.Audio.SFXVolume))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := c.assets.LoadSounds(ctx, mgr); err != nil {
		mgr.Close()
		return nil, err
	}
	return mgr, nil
}

// uploadModels puts the track and every model on the GPU and binds the handles.
func (c *Client) uploadModels() error {
	if err := c.renderer.BindTrack(c.world.Track); err != nil {
		return fmt.Errorf("upload track: %w", err)
	}

	models, err := c.assets.LoadModels()
	if err != nil {
		return fmt.Errorf("load models: %w", err)
	}

	ball, err := c.renderer.Upload(models.Ball, renderer.SnowColor)
	if err != nil {
		return fmt.Errorf("upload ball: %w", err)
	}
	pebble, err := c.renderer.Upload(models.Pebble, [3]float32{.22, .22, .25})
	if err != nil {
		return fmt.Errorf("upload pebble: %w", err)
	}
	carrot, err := c.renderer.Upload(models.Carrot, [3]float32{1, .5, .1})
	if err != nil {
		return fmt.Errorf("upload carrot: %w", err)
	}
	hat, err := c.renderer.Upload(models.Hat, [3]float32{.08, .08, .1})
	if err != nil {
		return fmt.Errorf("upload hat: %w", err)
	}

	c.world.Session.BindPlayerModel(ball)
	c.world.Pool.BindModels(pebble, carrot, hat)
	return nil
}

// Run starts the main game loop.
func (c *Client) Run() error {
	c.running = true

	// Timing
	lastTime := time.Now()
	frameCount, fps := 0, -1
	fpsTimer := time.Now()
	titleTimer := time.Time{}

	c.log.Info("starting game loop")

	for c.running {
		// Calculate delta time
		now := time.Now()
		dt := min(now.Sub(lastTime).Seconds(), maxFrameStep)
		lastTime = now

		// 1. Process input
		if c.input.Update() {
			c.running = false
			break
		}
		c.handleEvents()

		// 2. Update game state
		session := c.world.Session
		if !c.paused {
			session.Step(float32(dt), app.SteerInput(app.Controls{
				Left:   c.input.IsKeyDown(input.KeyLeft),
				Right:  c.input.IsKeyDown(input.KeyRight),
				Reset:  c.input.IsKeyPressed(input.KeyReset),
				StickX: c.input.StickX(),
			}, c.world.Tuning.MaxTilt))
		}
		c.hud.Apply(session.Events())

		// 3. Render
		c.render()
		if c.capture {
			c.capture = false
			c.saveScreenshot()
		}

		// 4. Present (swap buffers)
		c.window.SwapBuffers()
		if wait := app.FrameDelay(c.config.Graphics.FPSLimit, time.Since(now)); wait > 0 {
			time.Sleep(wait)
		}

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if c.config.Game.ShowFPS {
				fps = frameCount
			}
			c.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if time.Since(titleTimer) >= titleInterval {
			c.window.SetTitle(c.hud.Line(session.Stats(), fps))
			titleTimer = time.Now()
		}
	}

	return nil
}

func (c *Client) handleEvents() {
	session := c.world.Session
	for _, event := range c.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			c.renderer.Resize(event.Width, event.Height)
			session.Camera().Aspect = c.window.Aspect()
		case input.EventFocusLost:
			c.paused = true
			c.input.Reset()
			session.Suspend()
		case input.EventFocusGained:
			c.paused = false
			session.Resume()
		case input.EventKeyDown:
			switch event.Key {
			case input.KeyEscape:
				c.running = false
			case input.KeyCamera:
				c.orbiting = !c.orbiting
			case input.KeyCapture:
				c.capture = true
			}
		case input.EventMouseMove:
			if c.orbiting && event.Button != 0 {
				c.overview.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}
		case input.EventMouseWheel:
			if c.orbiting {
				c.overview.HandleZoom(float32(event.DeltaY))
			}
		}
	}
}

// render draws the current frame.
func (c *Client) render() {
	session := c.world.Session
	cam := session.Camera()

	view, proj := cam.ViewMatrix(), cam.ProjectionMatrix()
	items := session.DrawList(c.config.Game.Lookahead)
	if c.orbiting {
		view = c.overview.ViewMatrix()
		proj = mgl32.Perspective(math.Deg2Rad(cam.FOV), cam.Aspect, 1, overviewFar)
		items = session.TrackDrawList()
	}

	c.renderer.Begin()
	c.renderer.Draw(items, view, proj, session.TorchLights(), lighting.Suns())
	c.renderer.End()
}

func (c *Client) saveScreenshot() {
	pixels, width, height := c.renderer.ReadPixels()
	path, err := c.screenshots.Save(pixels, width, height)
	if err != nil {
		c.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	c.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up game resources.
func (c *Client) Close() {
	c.log.Info("closing client")

	if c.audio != nil {
		c.audio.Close()
	}
	if c.input != nil {
		c.input.Close()
	}
	if c.assets != nil {
		c.assets.Close()
	}
	if c.renderer != nil {
		c.renderer.Close()
	}
	if c.window != nil {
		c.window.Close()
	}
}

// Command sbinspect is a small terminal viewer over a live
// sbcontext.Context: it lists layers, their tracked objects, and each
// object's fusion outcome, redrawing as the arrow keys move a selection
// cursor.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lucidforge/sbcoord/command"
	"github.com/lucidforge/sbcoord/config"
	"github.com/lucidforge/sbcoord/contributor"
	"github.com/lucidforge/sbcoord/kind"
	"github.com/lucidforge/sbcoord/object"
	"github.com/lucidforge/sbcoord/sbcontext"
	"github.com/lucidforge/sbcoord/stdcmd"
)

// inspectorSprite is a minimal object.Sprite good enough to demo fusion
// output in the viewer; real callers would inspect their own sprite
// implementations through the same coordinator.
type inspectorSprite struct {
	name string
	cmds []command.Command
}

func (s *inspectorSprite) StartTime() float64 {
	if len(s.cmds) == 0 {
		return 0
	}
	return s.cmds[0].StartTime()
}
func (s *inspectorSprite) EndTime() float64 {
	if len(s.cmds) == 0 {
		return 0
	}
	end := s.cmds[0].EndTime()
	for _, c := range s.cmds[1:] {
		if c.EndTime() > end {
			end = c.EndTime()
		}
	}
	return end
}
func (s *inspectorSprite) Commands() []command.Command     { return s.cmds }
func (s *inspectorSprite) SetCommands(c []command.Command) { s.cmds = c }

// inspector holds the tcell screen and the shared context being viewed.
type inspector struct {
	screen tcell.Screen
	width  int
	height int

	shared   *sbcontext.Context
	layers   []*sbcontext.Layer
	sprites  map[*sbcontext.Layer][]*inspectorSprite
	selected int
}

func newInspector(shared *sbcontext.Context, sprites map[*sbcontext.Layer][]*inspectorSprite) (*inspector, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	in := &inspector{
		screen:  screen,
		shared:  shared,
		layers:  shared.SnapshotLayers(),
		sprites: sprites,
	}
	in.width, in.height = screen.Size()
	return in, nil
}

func (in *inspector) draw() {
	in.screen.Clear()

	headerStyle := tcell.StyleDefault.Bold(true)
	drawText(in.screen, 0, 0, headerStyle, "sbinspect  (up/down: select layer, r: re-fuse, q: quit)")

	row := 2
	for i, layer := range in.layers {
		style := tcell.StyleDefault
		if i == in.selected {
			style = style.Reverse(true)
		}
		label := layer.Identifier()
		if layer.IsUnnamed() {
			label = "(unnamed)"
		}
		drawText(in.screen, 0, row, style, fmt.Sprintf("layer %-16s objects=%d", label,
			len(layer.Coordinator.TrackedObjects())))
		row++
	}

	row++
	if in.selected >= 0 && in.selected < len(in.layers) {
		layer := in.layers[in.selected]
		for _, sprite := range in.sprites[layer] {
			drawText(in.screen, 2, row, tcell.StyleDefault, fmt.Sprintf("%s: %d commands", sprite.name, len(sprite.cmds)))
			row++
			for _, c := range sprite.cmds {
				drawText(in.screen, 4, row, tcell.StyleDefault.Foreground(tcell.ColorGray), stdcmd.String(c))
				row++
			}
		}
	}

	in.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func (in *inspector) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q'):
			return false
		case ev.Key() == tcell.KeyUp:
			if in.selected > 0 {
				in.selected--
			}
		case ev.Key() == tcell.KeyDown:
			if in.selected < len(in.layers)-1 {
				in.selected++
			}
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			in.refuseSelected()
		}
	case *tcell.EventResize:
		in.width, in.height = ev.Size()
		in.screen.Sync()
	}
	return true
}

func (in *inspector) refuseSelected() {
	if in.selected < 0 || in.selected >= len(in.layers) {
		return
	}
	layer := in.layers[in.selected]
	objects := make([]object.Object, 0, len(in.sprites[layer]))
	for _, s := range in.sprites[layer] {
		objects = append(objects, s)
	}
	layer.Coordinator.MergeCommands(objects)
}

func (in *inspector) run() {
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 32)
	go func() {
		for {
			eventChan <- in.screen.PollEvent()
		}
	}()

	in.draw()
	for {
		select {
		case ev := <-eventChan:
			if !in.handleInput(ev) {
				return
			}
			in.draw()
		case <-ticker.C:
			in.layers = in.shared.SnapshotLayers()
		}
	}
}

func (in *inspector) cleanup() {
	in.screen.Fini()
}

// buildDemoScene populates a shared context with a couple of layers and
// sample sprites so the viewer has something to show when no project
// config is given.
func buildDemoScene() (*sbcontext.Context, map[*sbcontext.Layer][]*inspectorSprite) {
	registry := kind.NewRegistry()
	stdcmd.RegisterAll(registry)
	shared := sbcontext.New(registry)

	background, _ := shared.GetLayer(sbcontext.Named("Background"))
	foreground, _ := shared.GetLayer(sbcontext.Named("Foreground"))

	background.Coordinator.RegisterContributor("artist-a", "artist-a", 0)
	foreground.Coordinator.RegisterContributor("artist-b", "artist-b", 0)

	bgSprite := &inspectorSprite{name: "bg-sprite.png", cmds: []command.Command{
		stdcmd.NewFade(command.EasingNone, 0, 1000, 0, 1),
		stdcmd.NewFade(command.EasingNone, 500, 1500, 1, 0.5),
	}}
	fgSprite := &inspectorSprite{name: "fg-logo.png", cmds: []command.Command{
		stdcmd.NewMove(command.EasingOut, 0, 2000, stdcmd.Vec2{X: 320, Y: 240}, stdcmd.Vec2{X: 320, Y: 100}),
	}}

	background.Coordinator.Track(bgSprite, "artist-a")
	foreground.Coordinator.Track(fgSprite, "artist-b")

	return shared, map[*sbcontext.Layer][]*inspectorSprite{
		background: {bgSprite},
		foreground: {fgSprite},
	}
}

func main() {
	var (
		shared  *sbcontext.Context
		sprites map[*sbcontext.Layer][]*inspectorSprite
	)

	if len(os.Args) > 1 {
		cfg, err := config.Load(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "sbinspect: failed to load config: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "sbinspect: %v\n", err)
			os.Exit(1)
		}
		registry := kind.NewRegistry()
		stdcmd.RegisterAll(registry)
		shared = sbcontext.New(registry)
		layer, err := shared.GetLayer(sbcontext.Named(cfg.DefaultContributorName))
		if err != nil {
			fmt.Fprintf(os.Stderr, "sbinspect: %v\n", err)
			os.Exit(1)
		}
		layer.Coordinator.RegisterContributor(
			contributor.ID(cfg.DefaultContributorName), cfg.DefaultContributorName, cfg.DefaultContributorPriority)
		sprites = map[*sbcontext.Layer][]*inspectorSprite{}
	} else {
		shared, sprites = buildDemoScene()
	}

	// Fuse every sprite once up front so the initial view already shows
	// merged command counts.
	for layer, layerSprites := range sprites {
		objects := make([]object.Object, 0, len(layerSprites))
		for _, s := range layerSprites {
			objects = append(objects, s)
		}
		layer.Coordinator.MergeCommands(objects)
	}

	in, err := newInspector(shared, sprites)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sbinspect: failed to init screen: %v\n", err)
		os.Exit(1)
	}
	defer in.cleanup()

	in.run()
}
